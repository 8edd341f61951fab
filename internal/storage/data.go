package storage

// WriteResult describes one successfully written Markdown file.
type WriteResult struct {
	filename string
	path     string
}

func NewWriteResult(filename, path string) WriteResult {
	return WriteResult{filename: filename, path: path}
}

func (w WriteResult) Filename() string { return w.filename }
func (w WriteResult) Path() string     { return w.path }
