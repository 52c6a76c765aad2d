package directory

type Employee struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
}

// blob is the JSON document persisted under StoreKey.
type blob struct {
	Version   int                       `json:"version"`
	Seq       uint64                    `json:"seq"`
	Employees map[string]storedEmployee `json:"employees"`
}

type storedEmployee struct {
	Employee
	Seq uint64 `json:"seq"`
}
