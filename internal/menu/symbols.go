package menu

// Reaction affordances attached to menu messages. Navigation arrows page or
// move the cursor, stop ends the menu, confirm finalizes a selection.
const (
	ReactLeft    = "◀" // previous page
	ReactRight   = "▶" // next page
	ReactStop    = "⏹" // end menu
	ReactUp      = "⬆" // cursor up
	ReactDown    = "⬇" // cursor down
	ReactConfirm = "☑" // confirm selection
)
