package model

// Record is the whole persisted store.
type Record struct {
	SchemaVersion int            `json:"schemaVersion"`
	Revision      int64          `json:"revision"`
	Stats         Stats          `json:"stats"`
	Events        []Event        `json:"events"`
	Approvals     []Approval     `json:"approvals"`
	Users         []User         `json:"users"`
	Files         Files          `json:"files"`
	Notifications []Notification `json:"notifications"`
	Registrations []Registration `json:"registrations"`
	Reports       []Report       `json:"reports"`
	Feedback      []Feedback     `json:"feedback"`
}

// Stats are dashboard counters patched by individual commands. They are not
// kept consistent with the lists; RecomputeStats rebuilds them.
type Stats struct {
	TotalEvents      int `json:"totalEvents"`
	TotalUsers       int `json:"totalUsers"`
	Registrations    int `json:"registrations"`
	PendingApprovals int `json:"pendingApprovals"`
}

// Event is a scheduled event. Date and Time are free-form text.
type Event struct {
	ID          ID          `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Department  string      `json:"department,omitempty"`
	Date        string      `json:"date"`
	Time        string      `json:"time"`
	Location    string      `json:"location"`
	Status      EventStatus `json:"status"`
	Type        string      `json:"type"`
	Capacity    int         `json:"capacity"`
	Registered  int         `json:"registered"`
}

// AvailableSpots is capacity minus registered, never negative.
func (e Event) AvailableSpots() int {
	if n := e.Capacity - e.Registered; n > 0 {
		return n
	}
	return 0
}

// Approval is an event submission waiting for an admin decision.
type Approval struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	Organizer   string `json:"organizer"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Type        string `json:"type,omitempty"`
	Capacity    int    `json:"capacity"`
	SubmittedAt string `json:"submittedAt"`
}

// ToEvent converts an approved submission. The id is carried over.
func (a Approval) ToEvent() Event {
	return Event{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Department:  a.Organizer,
		Date:        a.Date,
		Time:        a.Time,
		Location:    a.Location,
		Status:      StatusPublished,
		Type:        a.Type,
		Capacity:    a.Capacity,
		Registered:  0,
	}
}

type User struct {
	ID          ID         `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        Role       `json:"role"`
	Status      UserStatus `json:"status"`
	LastLogin   string     `json:"lastLogin"`
	EventsCount int        `json:"eventsCount"`
}

type Report struct {
	ID     ID     `json:"id"`
	UserID ID     `json:"userId"`
	Reason string `json:"reason"`
	Time   string `json:"time"`
}

type Notification struct {
	ID         ID     `json:"id"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	Type       string `json:"type"`
	Category   string `json:"category,omitempty"`
	Recipients string `json:"recipients,omitempty"`
	Time       string `json:"time"`
	Timestamp  string `json:"timestamp,omitempty"`
	Unread     bool   `json:"unread"`
}

// Registration links a user to an event. At most one per pair.
type Registration struct {
	UserID  ID `json:"userId"`
	EventID ID `json:"eventId"`
}

type Feedback struct {
	ID          ID     `json:"id"`
	EventID     ID     `json:"eventId"`
	UserID      ID     `json:"userId"`
	UserName    string `json:"userName"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
	SubmittedAt string `json:"submittedAt"`
}

// Files holds placeholder badge and document entries. Nothing is uploaded.
type Files struct {
	Badges    []FileEntry `json:"badges"`
	Documents []FileEntry `json:"documents"`
}

type FileEntry struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Account is one entry of the signed-up accounts list stored under AccountsKey.
type Account struct {
	ID        ID     `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      Role   `json:"role"`
	CreatedAt string `json:"createdAt"`
}

// Session is the current-session marker stored under SessionKey.
type Session struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// IsAdmin reports whether the session belongs to an administrator.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }
