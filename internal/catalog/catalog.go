package catalog

// Row is one record of the symptom reference dataset. A class appears in as
// many rows as it has question/answer combinations.
type Row struct {
	Symptom       string
	Question      string
	Answer        string
	Condition     string
	Remedies      string
	Suggestions   string
	CommonTablets string
}

// Diagnosis is the detail record resolved for a (class, answer) pair.
type Diagnosis struct {
	Condition     string `json:"probable_condition"`
	Remedies      string `json:"remedies"`
	Suggestions   string `json:"suggestions"`
	CommonTablets string `json:"common_tablets"`
}

// Catalog is the read-only reference dataset, indexed at construction time.
// All lookups preserve the dataset's first-occurrence order.
type Catalog struct {
	classes   []string
	questions map[string][]string
	answers   map[string][]string
	diagnoses map[string]map[string]Diagnosis
}

// New builds a Catalog from dataset rows. Duplicate questions and answers
// within a class collapse to their first occurrence; for duplicate
// (class, answer) pairs the first row's diagnosis wins.
func New(rows []Row) *Catalog {
	c := &Catalog{
		questions: make(map[string][]string),
		answers:   make(map[string][]string),
		diagnoses: make(map[string]map[string]Diagnosis),
	}
	for _, row := range rows {
		if row.Symptom == "" {
			continue
		}
		if _, seen := c.diagnoses[row.Symptom]; !seen {
			c.classes = append(c.classes, row.Symptom)
			c.diagnoses[row.Symptom] = make(map[string]Diagnosis)
		}
		if row.Question != "" && !contains(c.questions[row.Symptom], row.Question) {
			c.questions[row.Symptom] = append(c.questions[row.Symptom], row.Question)
		}
		if row.Answer != "" {
			if !contains(c.answers[row.Symptom], row.Answer) {
				c.answers[row.Symptom] = append(c.answers[row.Symptom], row.Answer)
			}
			if _, seen := c.diagnoses[row.Symptom][row.Answer]; !seen {
				c.diagnoses[row.Symptom][row.Answer] = Diagnosis{
					Condition:     row.Condition,
					Remedies:      row.Remedies,
					Suggestions:   row.Suggestions,
					CommonTablets: row.CommonTablets,
				}
			}
		}
	}
	return c
}

// Classes returns every symptom class in first-occurrence order.
func (c *Catalog) Classes() []string {
	return append([]string(nil), c.classes...)
}

// QuestionsFor returns the ordered, duplicate-free follow-up questions for a
// class. Unknown classes yield an empty list.
func (c *Catalog) QuestionsFor(class string) []string {
	return append([]string(nil), c.questions[class]...)
}

// AnswersFor returns the class-scoped candidate answer set in catalog order.
func (c *Catalog) AnswersFor(class string) []string {
	return append([]string(nil), c.answers[class]...)
}

// Diagnosis looks up the detail record for a (class, answer) pair.
func (c *Catalog) Diagnosis(class, answer string) (Diagnosis, bool) {
	d, ok := c.diagnoses[class][answer]
	return d, ok
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
