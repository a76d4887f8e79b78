package report

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/signintech/gopdf"

	"symptom-triage-agent/internal/triage"
)

type TelegramClient interface {
	SendMessage(chatID int64, text string) error
	SendDocument(chatID int64, fileData []byte, fileName string) error
}

// Service renders a PDF summary of a completed triage session and ships it
// to the clinician chat.
type Service struct {
	tgClient        TelegramClient
	clinicianChatID int64
}

func NewService(tg TelegramClient, clinicianChatID int64) *Service {
	return &Service{
		tgClient:        tg,
		clinicianChatID: clinicianChatID,
	}
}

// Common DejaVu locations across base images.
var fontPaths = []string{
	"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
}

func (s *Service) SendClinicianReport(ctx context.Context, it triage.Interaction) error {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	var fontErr error
	fontLoaded := false
	for _, path := range fontPaths {
		if err := pdf.AddTTFFont("DejaVu", path); err == nil {
			fontLoaded = true
			break
		} else {
			fontErr = err
		}
	}
	if !fontLoaded {
		return fmt.Errorf("failed to load font for PDF. Please ensure ttf-dejavu is installed. Last error: %w", fontErr)
	}

	if err := pdf.SetFont("DejaVu", "", 20); err != nil {
		return err
	}
	pdf.Cell(nil, "Symptom Triage Report")
	pdf.Br(30)

	if err := pdf.SetFont("DejaVu", "", 12); err != nil {
		return err
	}
	pdf.Cell(nil, fmt.Sprintf("Date: %s", time.Now().Format("02.01.2006 15:04")))
	pdf.Br(15)
	pdf.Cell(nil, fmt.Sprintf("Interaction ID: %s", it.ID))
	pdf.Br(15)
	pdf.Cell(nil, fmt.Sprintf("Symptom class: %s", it.SymptomClass))
	pdf.Br(15)
	s.writeWrapped(&pdf, fmt.Sprintf("Initial complaint: %s", it.UserInput))
	pdf.Br(10)

	if err := pdf.SetFont("DejaVu", "", 14); err != nil {
		return err
	}
	pdf.Cell(nil, "Follow-up dialog:")
	pdf.Br(15)

	if err := pdf.SetFont("DejaVu", "", 11); err != nil {
		return err
	}
	for i, question := range it.AskedQuestions {
		answer := ""
		if i < len(it.CollectedAnswers) {
			answer = it.CollectedAnswers[i]
		}
		s.writeWrapped(&pdf, fmt.Sprintf("Q%d: %s", i+1, question))
		s.writeWrapped(&pdf, fmt.Sprintf("A%d: %s", i+1, answer))
		pdf.Br(5)
	}
	pdf.Br(10)

	if it.Diagnosis != nil {
		if err := pdf.SetFont("DejaVu", "", 14); err != nil {
			return err
		}
		pdf.Cell(nil, "Assessment:")
		pdf.Br(15)
		if err := pdf.SetFont("DejaVu", "", 11); err != nil {
			return err
		}
		s.writeWrapped(&pdf, fmt.Sprintf("Probable condition: %s", it.Diagnosis.Condition))
		s.writeWrapped(&pdf, fmt.Sprintf("Remedies: %s", it.Diagnosis.Remedies))
		s.writeWrapped(&pdf, fmt.Sprintf("Suggestions: %s", it.Diagnosis.Suggestions))
		s.writeWrapped(&pdf, fmt.Sprintf("Common tablets: %s", it.Diagnosis.CommonTablets))
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	fileName := fmt.Sprintf("triage_%s.pdf", it.ID)
	if err := s.tgClient.SendDocument(s.clinicianChatID, buf.Bytes(), fileName); err != nil {
		return err
	}
	log.Printf("triage report %s sent to clinician chat", fileName)
	return nil
}

func (s *Service) writeWrapped(pdf *gopdf.GoPdf, text string) {
	lines, _ := pdf.SplitText(text, 500)
	for _, l := range lines {
		pdf.Cell(nil, l)
		pdf.Br(12)
	}
}
