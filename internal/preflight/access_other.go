//go:build !unix

package preflight

import "os"

// Without access(2), open the directory and, for Write, create and remove a
// scratch file in it.
func access(path string, mode int) error {
	dir, err := os.Open(path)
	if err != nil {
		return err
	}
	dir.Close()
	if mode&Write == 0 {
		return nil
	}
	scratch, err := os.CreateTemp(path, ".filesorter-access-*")
	if err != nil {
		return err
	}
	name := scratch.Name()
	scratch.Close()
	return os.Remove(name)
}
