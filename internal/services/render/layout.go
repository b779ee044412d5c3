package render

// Pos is a pixel coordinate inside the video frame, origin top-left.
type Pos struct {
	X int
	Y int
}

// BottomOffsets returns how far above the frame's lower edge each caption
// line starts: the title line sits above the chapter line, the chapter line
// keeps a single margin from the bottom.
func BottomOffsets(line1Height, line2Height, margin int) (title, chapter int) {
	return line1Height + line2Height + 2*margin, line2Height + margin
}

// Layout computes the anchor positions of the two caption lines for a frame
// of the given size. Both lines are left-aligned at the margin.
func Layout(frameWidth, frameHeight, line1Height, line2Height, margin int) (Pos, Pos) {
	titleOffset, chapterOffset := BottomOffsets(line1Height, line2Height, margin)
	return Pos{X: margin, Y: frameHeight - titleOffset},
		Pos{X: margin, Y: frameHeight - chapterOffset}
}
