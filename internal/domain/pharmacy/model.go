package pharmacy

// Pharmacy maps to the pharmacy table, an independent read-only directory.
type Pharmacy struct {
	ID              int64  `db:"id" json:"id"`
	Name            string `db:"name" json:"name"`
	Address         string `db:"address" json:"address"`
	City            string `db:"city" json:"city"`
	State           string `db:"state" json:"state"`
	Zip             string `db:"zip" json:"zip"`
	NCPDP           string `db:"ncpdp" json:"ncpdp"`
	InNetwork       bool   `db:"in_network" json:"in_network"`
	Open24h         bool   `db:"open_24h" json:"open_24h"`
	DirectoryMember bool   `db:"directory_member" json:"directory_member"`
	TestFlag        bool   `db:"test_flag" json:"test_flag"`
}

// Entry is the composite record returned by pharmacy search modes.
type Entry struct {
	Name  string `json:"name"`
	NCPDP string `json:"ncpdp"`
}

// Filters carries the optional directory search filters. Empty fields never
// contribute a predicate; all supplied fields are AND-composed.
type Filters struct {
	Term         string // free text: city prefix in city mode, name substring otherwise
	Coverage     string // in-network flag
	State        string
	City         string
	FullDay      string // 24-hour flag
	MemberOnly   string // directory-membership flag
	Zip          string
	TestPharmacy string
}
