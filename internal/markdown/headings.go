package markdown

// Heading represents a markdown heading.
type Heading struct {
	Level int
	Text  string
	Row   int // index of the heading's block
}

// Headings returns the headings among blocks, in document order.
func Headings(blocks []Block) []Heading {
	var headings []Heading
	for i, b := range blocks {
		if !b.IsHeading() {
			continue
		}
		headings = append(headings, Heading{
			Level: b.Level,
			Text:  b.Text,
			Row:   i,
		})
	}
	return headings
}
