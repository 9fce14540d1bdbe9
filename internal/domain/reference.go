package domain

// Reference/master data consumed read-only by the flow pipeline. These
// records are owned and mutated by external collaborators.

// Commerce is a client company.
type Commerce struct {
	ID           string   `json:"id"`
	RUT          string   `json:"rut,omitempty"`
	Name         string   `json:"name,omitempty"`
	Observation  string   `json:"observation,omitempty"`
	Services     []string `json:"services,omitempty"`
	LogoFileName string   `json:"logoFileName,omitempty"`
}

// Branch is a commerce site where tickets take place.
type Branch struct {
	ID          string  `json:"id"`
	CommerceID  string  `json:"commerceId,omitempty"`
	RUT         string  `json:"rut,omitempty"`
	Name        string  `json:"name,omitempty"`
	Observation string  `json:"observation,omitempty"`
	Address     string  `json:"address,omitempty"`
	City        string  `json:"city,omitempty"`
	Region      string  `json:"region,omitempty"`
	Commune     string  `json:"commune,omitempty"`
	Coords      *Coords `json:"coords,omitempty"`
}

// Category classifies tickets; Subcategory shares the shape. InternalID
// is the store-level identity stripped before composition.
type Category struct {
	InternalID  string `json:"_id,omitempty"`
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// Contact is a commerce-scoped person reachable for coordination.
type Contact struct {
	ID         string `json:"id"`
	CommerceID string `json:"commerceId,omitempty"`
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Mail       string `json:"mail,omitempty"`
	Position   string `json:"position,omitempty"`
}

// Employee covers both coordinators and technicals.
type Employee struct {
	ID             string `json:"id"`
	Role           string `json:"role,omitempty"`
	RUT            string `json:"rut,omitempty"`
	FullName       string `json:"fullName,omitempty"`
	FirstName      string `json:"firstName,omitempty"`
	SecondName     string `json:"secondName,omitempty"`
	FirstSurname   string `json:"firstSurname,omitempty"`
	SecondSurname  string `json:"secondSurname,omitempty"`
	DNINumber      string `json:"dniNumber,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty"`
	AssignmentDate string `json:"assignmentDate,omitempty"`
}

// ReferenceValue is one entry of a reference enumeration.
type ReferenceValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ReferenceTable is a small fixed enumeration (attention type, priority,
// states) stored in the datas collection and resolved by value.
type ReferenceTable struct {
	ID     string           `json:"id"`
	Values []ReferenceValue `json:"values"`
}
