package app

// NoticeKind classifies a recovered error.
type NoticeKind int

const (
	NoticeStorageRead NoticeKind = iota
	NoticeTheme
	NoticeCatalog
	NoticeLocation
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeStorageRead:
		return "storage"
	case NoticeTheme:
		return "theme"
	case NoticeCatalog:
		return "catalog"
	case NoticeLocation:
		return "location"
	default:
		return "unknown"
	}
}

// Notice is a user-facing message about an error that was recovered from.
type Notice struct {
	Kind    NoticeKind
	Message string
	Err     error
}

func (n Notice) String() string {
	return n.Message
}

// Notices returns every notice raised so far.
func (s *Session) Notices() []Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notice, len(s.notices))
	copy(out, s.notices)
	return out
}

func (s *Session) notify(kind NoticeKind, msg string, err error) {
	s.log.Warn().Err(err).Str("kind", kind.String()).Msg(msg)
	s.mu.Lock()
	s.notices = append(s.notices, Notice{Kind: kind, Message: msg, Err: err})
	s.mu.Unlock()
}
