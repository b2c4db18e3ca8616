package category

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fallback is the category used when no table entry recognizes an extension.
const Fallback = "Others"

// Category names a destination folder and the extensions routed to it.
type Category struct {
	Name       string
	Extensions []string
}

// Table is an ordered list of categories. Order decides which category wins
// when an extension is listed more than once.
type Table []Category

var defaultTable = Table{
	{Name: "Documents", Extensions: []string{".pdf", ".doc", ".docx", ".txt", ".rtf", ".odt", ".xls", ".xlsx", ".csv", ".ppt", ".pptx"}},
	{Name: "Images", Extensions: []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".webp", ".svg", ".ico", ".heic", ".raw"}},
	{Name: "Videos", Extensions: []string{".mp4", ".avi", ".mkv", ".mov", ".flv", ".wmv", ".webm", ".mpeg", ".3gp", ".m4v"}},
	{Name: "Audio", Extensions: []string{".mp3", ".wav", ".aac", ".flac", ".ogg", ".m4a", ".wma", ".aiff"}},
	{Name: "Code", Extensions: []string{".py", ".java", ".cpp", ".c", ".js", ".html", ".css", ".php", ".rb", ".swift", ".ts", ".sql"}},
	{Name: "Archives", Extensions: []string{".zip", ".rar", ".7z", ".tar", ".gz", ".bz2", ".xz", ".iso"}},
	{Name: "Executables", Extensions: []string{".exe", ".msi", ".bat", ".sh", ".apk", ".bin", ".jar"}},
	{Name: "Spreadsheets", Extensions: []string{".xls", ".xlsx", ".ods"}},
	{Name: "Presentations", Extensions: []string{".ppt", ".pptx", ".odp"}},
	{Name: "Fonts", Extensions: []string{".ttf", ".otf", ".woff", ".woff2", ".eot"}},
	{Name: "System", Extensions: []string{".dll", ".sys", ".ini", ".dat", ".tmp", ".log"}},
	{Name: "Database", Extensions: []string{".db", ".sqlite", ".sql", ".mdb", ".accdb"}},
}

// DefaultTable returns a copy of the built-in category table.
func DefaultTable() Table {
	return defaultTable.clone()
}

func (t Table) clone() Table {
	out := make(Table, len(t))
	for i, c := range t {
		out[i] = Category{Name: c.Name, Extensions: append([]string(nil), c.Extensions...)}
	}
	return out
}

// Classifier maps file extensions to category names.
type Classifier struct {
	table    Table
	fallback string
	index    map[string]string
}

// New builds a classifier over table. An empty fallback selects Fallback.
func New(table Table, fallback string) *Classifier {
	fallback = strings.TrimSpace(fallback)
	if fallback == "" {
		fallback = Fallback
	}
	c := &Classifier{
		table:    table.clone(),
		fallback: fallback,
		index:    make(map[string]string),
	}
	for _, cat := range c.table {
		for _, ext := range cat.Extensions {
			key := c.fold(ext)
			if _, taken := c.index[key]; taken {
				continue
			}
			c.index[key] = cat.Name
		}
	}
	return c
}

// Default returns a classifier over the built-in table.
func Default() *Classifier {
	return New(defaultTable, Fallback)
}

// Classify returns the first category in table order whose extension set
// contains ext, compared case-insensitively. Unknown extensions map to the
// fallback category.
func (c *Classifier) Classify(ext string) string {
	if name, ok := c.index[c.fold(ext)]; ok {
		return name
	}
	return c.fallback
}

// Fallback returns the catch-all category name.
func (c *Classifier) Fallback() string {
	return c.fallback
}

// Categories returns a copy of the table the classifier was built from.
func (c *Classifier) Categories() Table {
	return c.table.clone()
}

// Lookup reports whether name is a known category, including the fallback.
func (c *Classifier) Lookup(name string) bool {
	if name == c.fallback {
		return true
	}
	for _, cat := range c.table {
		if cat.Name == name {
			return true
		}
	}
	return false
}

// Owners lists every category that claims ext, in table order. More than one
// owner means Classify resolved a duplicate by position.
func (c *Classifier) Owners(ext string) []string {
	key := c.fold(ext)
	var owners []string
	for _, cat := range c.table {
		for _, candidate := range cat.Extensions {
			if c.fold(candidate) == key {
				owners = append(owners, cat.Name)
				break
			}
		}
	}
	return owners
}

// Casers carry state, so each call folds with a fresh one.
func (c *Classifier) fold(ext string) string {
	return cases.Fold().String(strings.TrimSpace(ext))
}
