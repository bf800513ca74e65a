// Package entity defines the closed set of record types exposed through the
// generic entity gateway, together with their visibility scoping and the
// codec translating between wire shape (structured arrays and objects) and
// storage shape (serialized JSON text columns).
package entity

// Kind identifies one entity type of the gateway's closed set.
type Kind int

const (
	KindPost Kind = iota
	KindComment
	KindNotification
	KindFavorite
	KindChatHistory
	KindChatStyle
	KindEmotionReport
	KindTrendAnalysis
	KindCourse
)

// Scope is the visibility policy applied when listing records of a kind.
type Scope int

const (
	// ScopeNone makes listings globally visible to any authenticated caller.
	ScopeNone Scope = iota
	// ScopeCreator restricts listings to records created by the caller.
	ScopeCreator
	// ScopeRecipient restricts listings to records addressed to the caller.
	ScopeRecipient
)

type fallbackKind int

const (
	fallbackArray fallbackKind = iota
	fallbackNull
)

// blobField maps one serialized storage column onto its structured wire field.
type blobField struct {
	wire     string
	storage  string
	fallback fallbackKind
}

// Descriptor captures gateway behaviour for a single entity kind: how
// listings are scoped, whether the creator is stamped on create, and which
// fields cross the codec boundary.
type Descriptor struct {
	Kind          Kind
	Name          string
	Scope         Scope
	TracksCreator bool
	blobs         []blobField
	numericFields []string
}

// ScopeColumn returns the storage column the scope filter applies to, or an
// empty string for unscoped kinds.
func (d Descriptor) ScopeColumn() string {
	switch d.Scope {
	case ScopeCreator:
		return "created_by"
	case ScopeRecipient:
		return "recipient_email"
	default:
		return ""
	}
}

var descriptors = []Descriptor{
	{
		Kind:          KindPost,
		Name:          "Post",
		Scope:         ScopeNone,
		TracksCreator: true,
		blobs: []blobField{
			{wire: "tags", storage: "tags_json", fallback: fallbackArray},
			{wire: "liked_by", storage: "liked_by_json", fallback: fallbackArray},
			{wire: "shared_style_data", storage: "shared_style_data_json", fallback: fallbackNull},
		},
		numericFields: []string{"shared_style_id"},
	},
	{
		Kind:          KindComment,
		Name:          "Comment",
		Scope:         ScopeNone,
		TracksCreator: true,
	},
	{
		Kind:          KindNotification,
		Name:          "Notification",
		Scope:         ScopeRecipient,
		numericFields: []string{"post_id"},
	},
	{
		Kind:          KindFavorite,
		Name:          "Favorite",
		Scope:         ScopeCreator,
		TracksCreator: true,
	},
	{
		Kind:          KindChatHistory,
		Name:          "ChatHistory",
		Scope:         ScopeCreator,
		TracksCreator: true,
		blobs: []blobField{
			{wire: "messages", storage: "messages_json", fallback: fallbackArray},
		},
	},
	{
		Kind:          KindChatStyle,
		Name:          "ChatStyle",
		Scope:         ScopeCreator,
		TracksCreator: true,
	},
	{
		Kind:          KindEmotionReport,
		Name:          "EmotionReport",
		Scope:         ScopeCreator,
		TracksCreator: true,
		blobs: []blobField{
			{wire: "selected_chats", storage: "selected_chats_json", fallback: fallbackArray},
			{wire: "analysis_result", storage: "analysis_result_json", fallback: fallbackNull},
		},
	},
	{
		Kind:          KindTrendAnalysis,
		Name:          "TrendAnalysis",
		Scope:         ScopeCreator,
		TracksCreator: true,
		blobs: []blobField{
			{wire: "selected_reports", storage: "selected_reports_json", fallback: fallbackArray},
			{wire: "trend_result", storage: "trend_result_json", fallback: fallbackNull},
		},
	},
	{
		Kind:  KindCourse,
		Name:  "Course",
		Scope: ScopeNone,
	},
}

var descriptorsByName = func() map[string]Descriptor {
	m := make(map[string]Descriptor, len(descriptors))
	for _, d := range descriptors {
		m[d.Name] = d
	}
	return m
}()

// ParseKind resolves an entity name from the request path. The lookup is
// case-sensitive; an unknown name reports false so callers can fail with a
// not-found rather than silently no-op.
func ParseKind(name string) (Descriptor, bool) {
	d, ok := descriptorsByName[name]
	return d, ok
}

// Kinds returns every registered descriptor, for migrations and tests.
func Kinds() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors)
	return out
}
