package keys

// Editor is the text buffer of the cell being edited.
type Editor struct {
	text []rune
	// replace makes the next typed rune replace the whole buffer.
	replace bool
}

// Start loads text into the buffer. With replace, the first typed rune
// discards it.
func (e *Editor) Start(text string, replace bool) {
	e.text = []rune(text)
	e.replace = replace
}

func (e *Editor) Text() string {
	return string(e.text)
}

func (e *Editor) Insert(r rune) {
	if e.replace {
		e.text = e.text[:0]
		e.replace = false
	}
	e.text = append(e.text, r)
}

func (e *Editor) Backspace() {
	e.replace = false
	if len(e.text) > 0 {
		e.text = e.text[:len(e.text)-1]
	}
}

func (e *Editor) Reset() {
	e.text = nil
	e.replace = false
}
