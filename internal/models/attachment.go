package models

// Attachment — загруженный файл, хранится целиком в памяти сессии.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

func (a *Attachment) Size() int {
	if a == nil {
		return 0
	}
	return len(a.Data)
}

// Clone returns a deep copy so callers cannot mutate stored bytes.
func (a *Attachment) Clone() *Attachment {
	if a == nil {
		return nil
	}
	data := make([]byte, len(a.Data))
	copy(data, a.Data)
	return &Attachment{Name: a.Name, ContentType: a.ContentType, Data: data}
}
