// Package common holds the error kinds, content hashing and file locking helpers
// shared by the traversal engine, the result processor and the bulk operations.
package common
