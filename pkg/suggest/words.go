package suggest

// Fixed word sets used for scoring. Entries are lower-case.

var commonWords = toSet(
	"the", "be", "to", "of", "and", "a", "in", "that", "have", "i",
	"it", "for", "not", "on", "with", "he", "as", "you", "do", "at",
	"this", "but", "his", "by", "from", "they", "we", "say", "her", "she",
	"or", "an", "will", "my", "one", "all", "would", "there", "their", "what",
	"so", "up", "out", "if", "about", "who", "get", "which", "go", "me",
	"when", "make", "can", "like", "time", "no", "just", "him", "know", "take",
	"people", "into", "year", "your", "good", "some", "could", "them", "see", "other",
	"than", "then", "now", "look", "only", "come", "its", "over", "think", "also",
	"back", "after", "use", "two", "how", "our", "work", "first", "well", "way",
	"even", "new", "want", "because", "any", "these", "give", "day", "most", "us",
)

var frequentWords = toSet(
	"today", "tomorrow", "tonight", "meeting", "call", "email", "buy", "need",
	"remember", "home", "project", "idea", "important", "check", "list", "plan",
	"week", "weekend", "done", "note", "notes", "groceries", "milk", "bread",
	"dentist", "appointment", "birthday", "report", "review", "send", "reminder",
	"lunch", "dinner", "finish", "pay", "rent", "bill", "doctor", "work", "happy",
)

// wordFamilies groups words that are related to each other for context scoring.
var wordFamilies = [][]string{
	{"work", "working", "worker", "workplace", "workload"},
	{"meet", "meeting", "meetings", "met"},
	{"call", "calling", "called", "calls", "phone"},
	{"write", "writing", "wrote", "written", "writer"},
	{"plan", "planning", "planned", "plans", "schedule"},
	{"think", "thinking", "thought", "thoughts"},
	{"feel", "feeling", "felt", "feelings"},
	{"go", "going", "went", "gone"},
	{"buy", "buying", "bought", "shopping", "groceries", "grocery", "store"},
	{"email", "emails", "mail", "inbox", "message", "reply"},
	{"home", "house", "family", "kitchen"},
	{"happy", "glad", "fun", "enjoy"},
	{"today", "tomorrow", "tonight", "yesterday", "week", "weekend"},
	{"pay", "payment", "bill", "rent", "invoice", "money", "budget", "tax"},
	{"doctor", "dentist", "hospital", "appointment", "health"},
	{"eat", "food", "lunch", "dinner", "breakfast", "meal", "cook"},
}

var familyIndex = buildFamilyIndex(wordFamilies)

// nextWordRule maps a phrase ending the context window to follow-up words.
type nextWordRule struct {
	pattern string
	words   []string
}

// nextWordRules are checked in order; longer phrases come first so their
// candidates lead the merged list.
var nextWordRules = []nextWordRule{
	{"i am", []string{"happy", "tired", "working", "thinking", "feeling", "going", "here", "ready"}},
	{"i have", []string{"to", "a", "been", "the", "no", "an"}},
	{"i will", []string{"be", "do", "have", "call", "go", "send"}},
	{"need to", []string{"buy", "call", "finish", "remember", "check", "send"}},
	{"have to", []string{"go", "do", "finish", "call", "pay", "be"}},
	{"remember to", []string{"call", "buy", "send", "check", "pay", "email"}},
	{"going to", []string{"be", "the", "do", "go", "make", "call"}},
	{"thank", []string{"you", "god", "goodness"}},
	{"i", []string{"am", "have", "will", "think", "need", "want", "was", "can"}},
	{"you", []string{"are", "can", "have", "will", "know", "should"}},
	{"we", []string{"are", "can", "have", "will", "should", "need"}},
	{"they", []string{"are", "were", "have", "will", "can"}},
	{"he", []string{"is", "was", "has", "will", "said"}},
	{"she", []string{"is", "was", "has", "will", "said"}},
	{"it", []string{"is", "was", "will", "has", "would"}},
	{"the", []string{"best", "first", "same", "next", "last", "other", "way", "most"}},
	{"a", []string{"lot", "few", "good", "new", "great", "little"}},
	{"is", []string{"a", "the", "not", "very", "going", "good", "that"}},
	{"was", []string{"a", "the", "not", "very", "so", "really"}},
	{"to", []string{"be", "do", "go", "the", "get", "make", "see"}},
	{"in", []string{"the", "a", "my", "this", "order", "time"}},
	{"on", []string{"the", "a", "my", "time", "monday", "friday"}},
	{"at", []string{"the", "home", "work", "least", "all", "noon"}},
	{"for", []string{"the", "a", "my", "you", "example", "now"}},
	{"of", []string{"the", "a", "my", "course", "all", "this"}},
	{"with", []string{"the", "a", "my", "you", "me"}},
	{"and", []string{"the", "i", "then", "a", "it"}},
	{"my", []string{"own", "family", "friend", "work", "home", "favorite"}},
}

// connectives are offered when no next-word rule matches.
var connectives = []string{
	"the", "a", "and", "to", "of", "in", "is", "it", "for", "that",
	"with", "on", "was", "as", "but", "be", "at", "by", "this", "or",
	"from", "so", "then", "if", "not",
}

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func buildFamilyIndex(families [][]string) map[string][]int {
	index := make(map[string][]int)
	for i, family := range families {
		for _, w := range family {
			index[w] = append(index[w], i)
		}
	}
	return index
}

// IsCommon reports whether word is in the common English word set.
func IsCommon(word string) bool {
	_, ok := commonWords[word]
	return ok
}

// IsFrequent reports whether word is in the frequent note-taking word set.
func IsFrequent(word string) bool {
	_, ok := frequentWords[word]
	return ok
}
