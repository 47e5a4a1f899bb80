package component

// Course is the singleton describing the course currently loaded.
type Course struct {
	Seed      uint64
	Length    int
	Completed bool
}

var CourseComponent = NewComponent[Course]()
