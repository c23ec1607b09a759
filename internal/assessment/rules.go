package assessment

// LocationTier is a keyword list for one location priority. Tiers are
// listed from most to least specific.
type LocationTier struct {
	Name  string   `yaml:"name"`
	Words []string `yaml:"words"`
}

// Exclusion suppresses Word as a location when Context appears in the
// sentence, e.g. 바다 inside 불바다.
type Exclusion struct {
	Word    string `yaml:"word"`
	Context string `yaml:"context"`
}

// Rules is the keyword data behind role extraction.
type Rules struct {
	FirstPerson      []string       `yaml:"first_person"`
	Narrator         string         `yaml:"narrator"`
	PersonKeywords   []string       `yaml:"person_keywords"`
	PersonSuffix     string         `yaml:"person_suffix"`
	SubjectParticles []string       `yaml:"subject_particles"`
	ObjectParticles  []string       `yaml:"object_particles"`
	Locations        []LocationTier `yaml:"locations"`
	CompoundTier     string         `yaml:"compound_tier"`
	Exclusions       []Exclusion    `yaml:"exclusions"`
	AbstractObjects  []string       `yaml:"abstract_objects"`
	FutureMarkers    []string       `yaml:"future_markers"`
	MinNounRunes     int            `yaml:"min_noun_runes"`
}

// DefaultRules returns the keyword tables tuned on the fairy-tale corpus.
func DefaultRules() Rules {
	return Rules{
		FirstPerson: []string{"나", "저", "내가", "제가", "우리"},
		Narrator:    "화자",
		PersonKeywords: []string{
			"사람", "아이", "엄마", "아빠", "할머니", "할아버지",
			"선생님", "친구", "어부", "왕자", "공주", "임금",
			"소년", "소녀", "남자", "여자", "어린이", "아이들",
		},
		PersonSuffix:     "님",
		SubjectParticles: []string{"이", "가", "은", "는"},
		ObjectParticles:  []string{"을", "를"},
		Locations: []LocationTier{
			{Name: "country", Words: []string{
				"고구려", "백제", "신라", "가야", "고려", "조선",
				"한국", "중국", "일본", "미국", "영국", "프랑스",
			}},
			{Name: "place", Words: []string{
				"집", "학교", "공원", "산", "바다", "강", "숲",
				"마을", "궁전", "성", "호수", "탑", "체육관",
			}},
			{Name: "abstract", Words: []string{"나라", "세상", "곳", "안", "밖", "방", "길", "하늘", "땅"}},
		},
		CompoundTier:    "place",
		Exclusions:      []Exclusion{{Word: "바다", Context: "불바다"}},
		AbstractObjects: []string{"여기", "거기", "저기", "이것", "그것", "것"},
		FutureMarkers:   []string{"것이다", "것입니다", "할 것", "될 것", "겠"},
		MinNounRunes:    2,
	}
}

// Lexicon returns every keyword noun, for seeding a rule-based tagger.
func (r Rules) Lexicon() []string {
	out := append([]string{}, r.PersonKeywords...)
	for _, t := range r.Locations {
		out = append(out, t.Words...)
	}
	return append(out, r.AbstractObjects...)
}

func (r Rules) locationTier(word string) int {
	for i, t := range r.Locations {
		if contains(t.Words, word) {
			return i
		}
	}
	return -1
}

// inTier reports whether word is listed in the named tier.
func (r Rules) inTier(name, word string) bool {
	for _, t := range r.Locations {
		if t.Name == name {
			return contains(t.Words, word)
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
