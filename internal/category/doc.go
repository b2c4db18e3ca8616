// Package category holds the static extension table and the classifier that
// maps a file extension to its destination category.
//
// Lookups are case-insensitive and never fail: anything unrecognized lands in
// the "Others" fallback. When an extension appears under several categories
// the first one in table order wins.
package category
