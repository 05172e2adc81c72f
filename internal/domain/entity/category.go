package entity

import (
	"regexp"
	"strings"
)

// Category is one label from the fixed enumerated set assigned by keyword matching.
type Category string

// The fixed category enumeration. Categorize only ever returns a subset of
// these; the remainder exist so stored rows and API filters stay valid.
const (
	CategoryPolitics      Category = "Politics"
	CategoryEconomy       Category = "Economy"
	CategorySocial        Category = "Social"
	CategoryBusiness      Category = "Business"
	CategoryEducation     Category = "Education"
	CategoryCulture       Category = "Culture"
	CategoryTechnology    Category = "Technology"
	CategorySports        Category = "Sports"
	CategoryWorld         Category = "World"
	CategoryHealth        Category = "Health"
	CategoryEntertainment Category = "Entertainment"
	CategoryScience       Category = "Science"
	CategoryGeneral       Category = "General"
)

// Categories lists every valid category value.
var Categories = []Category{
	CategoryPolitics, CategoryEconomy, CategorySocial, CategoryBusiness,
	CategoryEducation, CategoryCulture, CategoryTechnology, CategorySports,
	CategoryWorld, CategoryHealth, CategoryEntertainment, CategoryScience,
	CategoryGeneral,
}

// Valid reports whether the category is a member of the fixed enumeration.
func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// categoryRule pairs a category with its bilingual keyword pattern.
// Rule order is a tie-break policy: an article matching several rules gets
// the first one, so the slice order must stay stable across releases.
type categoryRule struct {
	category Category
	pattern  *regexp.Regexp
}

var categoryRules = []categoryRule{
	{CategoryPolitics, regexp.MustCompile(`politics|government|election|parliament|minister|diplomacy|president|senate|سياسة|حكومة|انتخابات|برلمان|وزير|دبلوماسية`)},
	{CategoryEconomy, regexp.MustCompile(`economy|business|finance|market|stock|trade|investment|inflation|crypto|اقتصاد|أعمال|مال|سوق|تجارة|استثمار|تضخم`)},
	{CategorySocial, regexp.MustCompile(`social|society|people|community|human rights|welfare|activism|اجتماعي|مجتمع|ناس|حقوق الإنسان|رفاهية`)},
	{CategoryTechnology, regexp.MustCompile(`tech|science|digital|ai|software|robot|space|innovation|gadget|تكنولوجيا|علوم|ذكاء|فضاء|ابتكار`)},
	{CategorySports, regexp.MustCompile(`sport|football|match|fifa|olympic|tennis|basketball|soccer|رياضة|كرة|مباراة|أولمبياد`)},
	{CategoryHealth, regexp.MustCompile(`health|medical|virus|hospital|doctor|vaccine|pandemic|wellness|صحة|طبي|فيروس|مستشفى|طبيب|لقاح|وباء`)},
	{CategoryEntertainment, regexp.MustCompile(`entertainment|movie|music|celebrity|cinema|arts|showbiz|fashion|ترفيه|سينما|موسيقى|فنون|مشاهير`)},
	{CategoryEducation, regexp.MustCompile(`education|school|university|student|learning|teach|academy|تعليم|مدرسة|جامعة|طالب|تعلم`)},
	{CategoryCulture, regexp.MustCompile(`culture|heritage|tradition|literature|history|museum|ثقافة|تراث|تقاليد|أدب|تاريخ`)},
}

// Categorize assigns a category to an article from its title and content.
// It is pure and deterministic: the combined text is lowercased and tested
// against the ordered rule list; the first match wins, World is the default.
func Categorize(title, content string) Category {
	combined := strings.ToLower(title + " " + content)
	for _, rule := range categoryRules {
		if rule.pattern.MatchString(combined) {
			return rule.category
		}
	}
	return CategoryWorld
}
