package tasks

// Task ids are 0-based ordinals of data rows. The header takes the first line
// of the Tasks sheet, so task id lives at values[id+1] of a range read from
// A1 and on sheet line id+2. Every read and write goes through these.

// Position returns the index of task id within the values of a Tasks range
// that starts at line 1.
func Position(id int) int {
	return id + 1
}

// SheetRow returns the 1-based sheet line holding task id.
func SheetRow(id int) int {
	return Position(id) + 1
}

// NextID returns the id an appended task receives given the values of the
// Tasks range read from line 1: the number of stored data rows.
func NextID(rows [][]string) int {
	if len(rows) <= 1 {
		return 0
	}
	return len(rows) - 1
}
