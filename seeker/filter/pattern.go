package filter

// MatchPattern reports whether the file identified by name and absolute path
// satisfies the criteria's pattern. A missing pattern matches everything.
// The traversal calls this before any stat or hash work.
func (c *Criteria) MatchPattern(name, path string) bool {
	if c.pattern == nil {
		return true
	}
	if c.target == TargetPath {
		return c.pattern.MatchString(path)
	}
	return c.pattern.MatchString(name)
}
