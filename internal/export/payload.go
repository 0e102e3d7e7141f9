package export

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// WritePayload writes the documents of one book as
//
//	{"book_id": N, "files": {"001.htm": "...", ...}}
//
// with the files in document order. HTML in the documents is not escaped.
func WritePayload(w io.Writer, bookID int, docs []Document) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "{\n  \"book_id\": %d,\n  \"files\": {\n", bookID)
	for i, d := range docs {
		name, err := jsonString(d.Name)
		if err != nil {
			return err
		}
		content, err := jsonString(d.Content)
		if err != nil {
			return err
		}
		fmt.Fprintf(bw, "    %s: %s", name, content)
		if i < len(docs)-1 {
			bw.WriteByte(',')
		}
		bw.WriteByte('\n')
	}
	bw.WriteString("  }\n}\n")
	return bw.Flush()
}

func jsonString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
