package profile

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// keyAliases maps historical key spellings (already canonicalized) onto the
// field names of the typed schema.
var keyAliases = map[string]string{
	// evaluation
	"experience_rating":       "experience_score",
	"experience_match_score":  "experience_score",
	"skill_score":             "skills_score",
	"skills_rating":           "skills_score",
	"education_rating":        "education_score",
	"project_score":           "projects_score",
	"projects_rating":         "projects_score",
	"skill_match":             "skills_match",
	"matched_skills":          "skills_match",
	"matching_skills":         "skills_match",
	"skill_gaps":              "missing_skills",
	"skills_gap":              "missing_skills",
	"lacking_skills":          "missing_skills",
	"match_percentage":        "requirement_coverage",
	"jd_coverage":             "requirement_coverage",
	"requirements_coverage":   "requirement_coverage",
	"key_strengths":           "strengths",
	"weaknesses":              "gaps",
	"areas_of_improvement":    "gaps",
	"overall_summary":         "summary",
	"evaluation_summary":      "summary",
	"professional_summary":    "summary",
	"candidate_name":          "name",
	"full_name":               "name",
	"email_address":           "email",
	"phone_number":            "phone",
	"contact_number":          "phone",
	"technical_skills":        "skills",
	"key_skills":              "skills",
	"work_experience":         "experience",
	"professional_experience": "experience",
	"experiences":             "experience",
	"educational_background":  "education",
	"personal_projects":       "projects",
	"project":                 "projects",
	"certificates":            "certifications",
	// entries
	"job_title":           "title",
	"position":            "title",
	"designation":         "title",
	"role":                "title",
	"project_name":        "title",
	"project_title":       "title",
	"company_name":        "company",
	"organization":        "company",
	"employer":            "company",
	"degree_name":         "degree",
	"university":          "institution",
	"college":             "institution",
	"school":              "institution",
	"institute":           "institution",
	"graduation_year":     "year",
	"year_of_passing":     "year",
	"tech_stack":          "technologies",
	"technologies_used":   "technologies",
	"tools":               "technologies",
	"years_of_experience": "years",
	// job description
	"must_have_skills":       "required_skills",
	"requirements":           "required_skills",
	"nice_to_have_skills":    "preferred_skills",
	"good_to_have_skills":    "preferred_skills",
	"minimum_experience":     "minimum_years",
	"experience_required":    "minimum_years",
	"required_experience":    "minimum_years",
	"key_responsibilities":   "responsibilities",
	"duties":                 "responsibilities",
	"education_requirements": "education",
}

var (
	keySeparators = regexp.MustCompile(`[\s\-./]+`)
	keyInvalid    = regexp.MustCompile(`[^a-z0-9_]`)
	listSplitter  = regexp.MustCompile(`\s*[,;\n]\s*`)
	numberPrefix  = regexp.MustCompile(`^-?\d+(\.\d+)?`)
)

// CanonicalKey lowercases the key, turns separators into underscores and
// resolves known aliases: "Skills Match", "Skills_Match" and "matched-skills"
// all become "skills_match".
func CanonicalKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = keySeparators.ReplaceAllString(key, "_")
	key = keyInvalid.ReplaceAllString(key, "")
	key = strings.Trim(key, "_")
	for strings.Contains(key, "__") {
		key = strings.ReplaceAll(key, "__", "_")
	}
	if alias, ok := keyAliases[key]; ok {
		return alias
	}
	return key
}

// NormalizeKeys returns a copy of v with every map key canonicalized,
// recursing into nested maps and slices. When two spellings collapse onto
// the same key, the first non-empty value in sorted key order wins.
func NormalizeKeys(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for k := range typed {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		out := make(map[string]any, len(typed))
		for _, k := range keys {
			canonical := CanonicalKey(k)
			if canonical == "" {
				continue
			}
			value := NormalizeKeys(typed[k])
			if existing, ok := out[canonical]; ok && !isEmpty(existing) {
				continue
			}
			out[canonical] = value
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = NormalizeKeys(item)
		}
		return out
	default:
		return v
	}
}

// DecodeResume normalizes and decodes a parsed resume payload.
func DecodeResume(raw map[string]any) (*Resume, error) {
	var resume Resume
	if err := decode(raw, &resume, "resume", "parsed_resume", "candidate"); err != nil {
		return nil, fmt.Errorf("decode resume: %w", err)
	}
	return &resume, nil
}

// DecodeJob normalizes and decodes a parsed job description payload.
func DecodeJob(raw map[string]any) (*JobDescription, error) {
	var job JobDescription
	if err := decode(raw, &job, "job", "job_description", "jd"); err != nil {
		return nil, fmt.Errorf("decode job description: %w", err)
	}
	return &job, nil
}

// DecodeEvaluation normalizes and decodes an evaluation payload.
func DecodeEvaluation(raw map[string]any) (*Evaluation, error) {
	var eval Evaluation
	if err := decode(raw, &eval, "evaluation", "assessment", "result"); err != nil {
		return nil, fmt.Errorf("decode evaluation: %w", err)
	}
	return &eval, nil
}

func decode(raw map[string]any, target any, wrappers ...string) error {
	normalized, _ := NormalizeKeys(raw).(map[string]any)
	normalized = unwrap(normalized, wrappers...)

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			lenientNumberHook,
			lenientListHook,
			joinListHook,
		),
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(normalized)
}

// unwrap strips a single wrapping object such as {"resume": {...}}.
func unwrap(m map[string]any, wrappers ...string) map[string]any {
	if len(m) != 1 {
		return m
	}
	for _, w := range wrappers {
		if inner, ok := m[w].(map[string]any); ok {
			return inner
		}
	}
	return m
}

// lenientNumberHook accepts "NA", "8/10", "75%" and " 7.5 " for numeric fields.
func lenientNumberHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Float64 {
		return data, nil
	}

	s := strings.TrimSpace(data.(string))
	if IsNA(s) {
		return 0.0, nil
	}

	match := numberPrefix.FindString(s)
	if match == "" {
		return nil, fmt.Errorf("cannot read %q as a number", s)
	}

	return strconv.ParseFloat(match, 64)
}

// lenientListHook splits comma separated strings into lists and maps NA to an empty list.
func lenientListHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Slice || to.Elem().Kind() != reflect.String {
		return data, nil
	}

	s := strings.TrimSpace(data.(string))
	if IsNA(s) {
		return []string{}, nil
	}

	parts := listSplitter.Split(s, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.TrimLeft(p, "-*• "))
		if p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}

// joinListHook turns a list into a single string for scalar text fields.
func joinListHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.Slice || to.Kind() != reflect.String {
		return data, nil
	}

	items, ok := data.([]any)
	if !ok {
		return data, nil
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		parts = append(parts, strings.TrimSpace(fmt.Sprintf("%v", item)))
	}
	return strings.Join(parts, "; "), nil
}

func isEmpty(v any) bool {
	switch typed := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(typed) == ""
	case []any:
		return len(typed) == 0
	case map[string]any:
		return len(typed) == 0
	default:
		return false
	}
}
