package registration

import (
	"context"
	"log"
	"strings"

	"github.com/asr-diagnostics/lims-service/internal/messaging"
)

type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
}

func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
	}
}

// Register runs the pure structural validation, hands the payload to the
// transactional writer, and enqueues the email notification job once the
// commit has succeeded. Returns the generated UHID.
func (s *Service) Register(ctx context.Context, user UserContext, req *RegistrationRequest) (string, error) {
	if err := ValidateRequest(req); err != nil {
		return "", err
	}

	result, err := s.repo.Register(ctx, user, req)
	if err != nil {
		return "", err
	}

	s.enqueueRegistrationEmail(ctx, req, result)

	return result.UHID, nil
}

// classifyRegistration picks the notification category by priority:
// bill+tests beats tests+scheme beats everything else.
func classifyRegistration(req *RegistrationRequest) string {
	hasBill := len(req.Bill) > 0
	hasTests := len(req.InvestigationIDs) > 0
	hasScheme := len(req.PaymentSchemes) > 0

	switch {
	case hasBill && hasTests:
		return RegTypeBillTest
	case hasTests && hasScheme:
		return RegTypePPPTest
	default:
		return RegTypeGeneral
	}
}

// enqueueRegistrationEmail publishes the email job when the patient opted
// in and left an address. A publish failure is logged and swallowed; the
// registration is already committed and must not be failed retroactively.
func (s *Service) enqueueRegistrationEmail(ctx context.Context, req *RegistrationRequest, result *Result) {
	if s.publisher == nil || !req.EmailOpt || req.PEmail == "" {
		return
	}

	regType := classifyRegistration(req)

	data := messaging.RegistrationEmailData{
		To:               req.PEmail,
		PatientName:      patientDisplayName(req),
		UHID:             result.UHID,
		RegType:          regType,
		RegistrationDate: req.PRegDate,
		FacilityName:     result.FacilityName,
	}
	if len(result.TestNames) > 0 {
		data.TestNames = strings.Join(result.TestNames, ", ")
	}
	if regType == RegTypeBillTest {
		data.BillAmount = req.Bill[0].AmtReceivable
	}

	job := messaging.RegistrationEmailJob{
		BaseEvent: messaging.NewBaseEvent(messaging.EventRegistrationEmail),
		Data:      data,
	}

	if err := s.publisher.Publish(ctx, messaging.EventRegistrationEmail, job); err != nil {
		log.Printf("Warning: failed to publish registration email job for UHID %s: %v", result.UHID, err)
		return
	}
	log.Printf("Email job enqueued for %s registration (UHID: %s)", regType, result.UHID)
}

func patientDisplayName(req *RegistrationRequest) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{req.PTitle, req.PName, req.PLName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
