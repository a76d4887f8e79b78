package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headacheRows() []Row {
	return []Row{
		{Symptom: "Headache", Question: "Where is the pain located?", Answer: "Tension", Condition: "Tension headache", Remedies: "Rest", Suggestions: "Reduce screen time", CommonTablets: "Paracetamol"},
		{Symptom: "Headache", Question: "Does light make it worse?", Answer: "Migraine", Condition: "Migraine", Remedies: "Dark room", Suggestions: "Track triggers", CommonTablets: "Ibuprofen"},
		// duplicate question and answer rows collapse
		{Symptom: "Headache", Question: "Where is the pain located?", Answer: "Migraine", Condition: "Shadowed duplicate", Remedies: "", Suggestions: "", CommonTablets: ""},
		{Symptom: "Fever", Question: "How high is your temperature?", Answer: "Viral", Condition: "Viral infection", Remedies: "Fluids", Suggestions: "Monitor", CommonTablets: "Paracetamol"},
	}
}

func TestQuestionsForDeduplicatesInOrder(t *testing.T) {
	c := New(headacheRows())

	questions := c.QuestionsFor("Headache")
	require.Equal(t, []string{
		"Where is the pain located?",
		"Does light make it worse?",
	}, questions)

	// pure function: repeated calls yield identical sequences
	assert.Equal(t, questions, c.QuestionsFor("Headache"))
}

func TestAnswersForScopedToClass(t *testing.T) {
	c := New(headacheRows())

	assert.Equal(t, []string{"Tension", "Migraine"}, c.AnswersFor("Headache"))
	assert.Equal(t, []string{"Viral"}, c.AnswersFor("Fever"))
	assert.Empty(t, c.AnswersFor("Unknown"))
}

func TestDiagnosisFirstRowWins(t *testing.T) {
	c := New(headacheRows())

	d, ok := c.Diagnosis("Headache", "Migraine")
	require.True(t, ok)
	assert.Equal(t, "Migraine", d.Condition)

	_, ok = c.Diagnosis("Headache", "Cluster")
	assert.False(t, ok)
}

func TestClassesFirstOccurrenceOrder(t *testing.T) {
	c := New(headacheRows())
	assert.Equal(t, []string{"Headache", "Fever"}, c.Classes())
}

func TestLoadCSV(t *testing.T) {
	data := "Symptom,Follow-up Question,Answer,Probable Condition,Remedies,Suggestions,Common Tablets\n" +
		"Headache,Where is the pain?,Tension,Tension headache,Rest,Less screens,Paracetamol\n" +
		"Headache,Where is the pain?,Migraine,Migraine,Dark room,Track triggers,Ibuprofen\n"
	path := filepath.Join(t.TempDir(), "dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Headache"}, c.Classes())
	assert.Equal(t, []string{"Where is the pain?"}, c.QuestionsFor("Headache"))
	assert.Equal(t, []string{"Tension", "Migraine"}, c.AnswersFor("Headache"))
}

func TestLoadMissingColumn(t *testing.T) {
	data := "Symptom,Answer\nHeadache,Tension\n"
	path := filepath.Join(t.TempDir(), "dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
