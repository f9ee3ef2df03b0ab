package curate

import (
	"strings"

	"github.com/katalogapp/katalog-server/internal/domain"
)

// Category labels form a closed, ordered classification. Every record
// maps to exactly one of them; CategoryOther is the catch-all.
const (
	CategoryChildren  = "Kinder & Jugend"
	CategoryReligion  = "Religion"
	CategoryArts      = "Kunst & Kultur"
	CategoryMedicine  = "Medizin"
	CategoryBusiness  = "Wirtschaft & Recht"
	CategorySchool    = "Schule & Lernen"
	CategoryReference = "Sachbuch"
	CategoryFiction   = "Belletristik"
	CategoryOther     = "Sonstiges"
)

// Categories lists all labels in display order.
//
//nolint:gochecknoglobals // Static label set
var Categories = []string{
	CategoryChildren,
	CategoryReligion,
	CategoryArts,
	CategoryMedicine,
	CategoryBusiness,
	CategorySchool,
	CategoryReference,
	CategoryFiction,
	CategoryOther,
}

// matchField selects which record field a rule inspects.
type matchField int

const (
	matchSubject matchField = iota
	matchTitle
	matchPublisher
)

// categoryRule is one row of the classification table: a keyword set
// matched case-insensitively as a substring against one field.
type categoryRule struct {
	field    matchField
	keywords []string
	label    string
}

// categoryRules is evaluated top to bottom; the first match wins, so
// subject rules pre-empt publisher rules, which pre-empt title rules.
//
//nolint:gochecknoglobals // Static rule table
var categoryRules = []categoryRule{
	// Subject field (the shelving "Fach" from the card catalog).
	{matchSubject, []string{"kinder", "jugend", "bilderbuch", "märchen"}, CategoryChildren},
	{matchSubject, []string{"religion", "theologie", "kirche", "bibel", "glaube"}, CategoryReligion},
	{matchSubject, []string{"kunst", "musik", "kultur", "theater", "fotografie"}, CategoryArts},
	{matchSubject, []string{"medizin", "gesundheit", "pflege", "anatomie"}, CategoryMedicine},
	{matchSubject, []string{"wirtschaft", "recht", "jura", "steuer", "management"}, CategoryBusiness},
	{matchSubject, []string{"schule", "lernen", "unterricht", "pädagogik", "didaktik"}, CategorySchool},
	{matchSubject, []string{"sachbuch", "lexikon", "nachschlag", "wissenschaft", "geschichte", "natur", "technik"}, CategoryReference},
	{matchSubject, []string{"roman", "erzählung", "belletristik", "lyrik", "novelle"}, CategoryFiction},

	// Children's-book imprints recognizable from the publisher field.
	{matchPublisher, []string{
		"carlsen", "ravensburger", "oetinger", "arena", "loewe",
		"thienemann", "coppenrath", "schneiderbuch", "esslinger", "ars edition",
	}, CategoryChildren},

	// Title keywords, weakest evidence, evaluated last.
	{matchTitle, []string{
		"pixi", "conni", "benjamin blümchen", "bibi blocksberg", "tkkg",
		"die drei ???", "fünf freunde", "pumuckl", "wieso weshalb warum",
	}, CategoryChildren},
	{matchTitle, []string{"krimi", "thriller", "mord", "kommissar", "tatort", "detektiv"}, CategoryFiction},
	{matchTitle, []string{"fantasy", "science fiction", "sci-fi", "drachen", "zauber", "magie", "vampir"}, CategoryFiction},
	{matchTitle, []string{"handbuch", "lexikon", "atlas", "wörterbuch", "ratgeber", "grundlagen", "einführung"}, CategoryReference},
	{matchTitle, []string{"bibel", "gebet", "gesangbuch", "psalm", "andacht"}, CategoryReligion},
	{matchTitle, []string{"übungsheft", "arbeitsheft", "schulbuch", "rechtschreibung", "grammatik", "vokabel"}, CategorySchool},
}

// Classify assigns exactly one category label to a record. The rule
// table is scanned in order and the first matching rule wins; records
// matching nothing fall through to CategoryOther.
func Classify(raw *domain.RawRecord) string {
	subject := strings.ToLower(raw.Subject)
	title := strings.ToLower(raw.Title)
	publisher := strings.ToLower(raw.Publisher)

	for _, rule := range categoryRules {
		var haystack string
		switch rule.field {
		case matchSubject:
			haystack = subject
		case matchTitle:
			haystack = title
		case matchPublisher:
			haystack = publisher
		}
		if haystack == "" {
			continue
		}
		for _, kw := range rule.keywords {
			if strings.Contains(haystack, kw) {
				return rule.label
			}
		}
	}
	return CategoryOther
}
