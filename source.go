package zipread

import "os"

// ReadFile loads the whole file at path into memory. The archive
// format needs random access from both ends, so the file is never
// streamed.
func ReadFile(path string) ([]byte, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	return buf, nil
}
