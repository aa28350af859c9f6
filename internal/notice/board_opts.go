package notice

type BoardOpt func(*Board)

// WithWidth sets the column width text elements are wrapped to.
func WithWidth(width int) BoardOpt {
	return func(b *Board) {
		if width > 0 {
			b.width = width
		}
	}
}
