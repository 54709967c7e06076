package types

// Position is a screen-space location of the cursor.
// Line is 1-based to match the buffer's line index.
// Col is the 0-based cell column, so wide characters count twice.
type Position struct {
	Line int
	Col  int
}
