package topic

import (
	"testing"

	"github.com/estateflow/leadlens/core"
	"github.com/stretchr/testify/assert"
)

func messagesWith(contents ...string) []core.Message {
	messages := make([]core.Message, len(contents))
	for i, content := range contents {
		messages[i] = core.Message{
			Sender:     core.SenderTypeLead,
			SenderName: "Ana",
			Content:    content,
		}
	}
	return messages
}

func TestDetect_NoMentions(t *testing.T) {
	detector := NewDetector()
	found := detector.Detect(messagesWith("hola, busco un departamento", "algo de dos recamaras"))
	assert.Empty(t, found)
}

func TestDetect_CanonicalMapping(t *testing.T) {
	detector := NewDetector()

	t.Run("full name", func(t *testing.T) {
		found := detector.Detect(messagesWith("me interesa torre alvarez"))
		assert.Equal(t, []string{"Torre Alvarez"}, found)
	})

	t.Run("partial alias", func(t *testing.T) {
		found := detector.Detect(messagesWith("vi el anuncio de alvarez"))
		assert.Equal(t, []string{"Torre Alvarez"}, found)
	})

	t.Run("case insensitive across messages", func(t *testing.T) {
		found := detector.Detect(messagesWith("Residencial", "DEL PARQUE me gusto"))
		assert.Equal(t, []string{"Residencial del Parque"}, found)
	})
}

// A longer phrase is always tested before a shorter phrase it contains.
// Both "lomas verdes" and "lomas" match the input below; since they map to
// the same canonical project, deduplication yields a single identifier.
// Overlapping keywords with different canonical targets would both appear.
func TestDetect_LongestFirstPrecedence(t *testing.T) {
	detector := NewDetector()
	found := detector.Detect(messagesWith("me interesa lomas verdes"))
	assert.Equal(t, []string{"Lomas Verdes"}, found)

	t.Run("diverging canonical ids both match", func(t *testing.T) {
		custom := NewDetectorWithKeywords(map[string]string{
			"lomas verdes": "Lomas Verdes",
			"lomas":        "Lomas del Sol",
		})
		found := custom.Detect(messagesWith("me interesa lomas verdes"))
		assert.Equal(t, []string{"Lomas Verdes", "Lomas del Sol"}, found)
	})
}

func TestDetect_MultipleProjectsInDetectionOrder(t *testing.T) {
	detector := NewDetector()
	found := detector.Detect(messagesWith(
		"estoy comparando lomas verdes con residencial del parque",
	))
	// Longest keyword first: "residencial del parque" (22) beats
	// "lomas verdes" (12).
	assert.Equal(t, []string{"Residencial del Parque", "Lomas Verdes"}, found)
}

func TestDetect_SubstringNotWordBounded(t *testing.T) {
	// Substring search by design: "alvarez" inside a longer word still hits.
	detector := NewDetector()
	found := detector.Detect(messagesWith("escribo desde alvarezconstrucciones"))
	assert.Equal(t, []string{"Torre Alvarez"}, found)
}
