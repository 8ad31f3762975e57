package stats

import (
	"fmt"
	"time"
)

// MentalHealth tracks the psychological stats and their event counters.
// Stats stay in [0,100]; counters are monotonic and never decrease.
type MentalHealth struct {
	Depression     int `json:"depression"`
	Anxiety        int `json:"anxiety"`
	SelfEsteem     int `json:"self_esteem"`
	SupportNetwork int `json:"support_network"`
	CopingSkills   int `json:"coping_skills"`

	BullyingIncidents int       `json:"bullying_incidents"`
	Breakups          int       `json:"breakups"`
	TherapySessions   int       `json:"therapy_sessions"`
	LastTherapy       time.Time `json:"last_therapy,omitempty"`
}

// NewMentalHealth returns an unremarkable starting profile.
func NewMentalHealth() *MentalHealth {
	return &MentalHealth{
		Depression:     20,
		Anxiety:        25,
		SelfEsteem:     60,
		SupportNetwork: 40,
		CopingSkills:   50,
	}
}

// Maximum daily depression relief from the support network.
const maxSupportRelief = 10

// DailyUpdate runs once per day boundary: accumulated bullying and breakups
// weigh on depression and self-esteem, then the support network claws some of
// it back.
func (m *MentalHealth) DailyUpdate() {
	if m.BullyingIncidents > 5 {
		m.Depression += m.BullyingIncidents / 5
		m.SelfEsteem -= m.BullyingIncidents / 7
	}
	if m.Breakups > 0 {
		m.Depression += m.Breakups * 5
		m.SelfEsteem -= m.Breakups * 7
	}

	relief := m.SupportNetwork / 10
	if relief > maxSupportRelief {
		relief = maxSupportRelief
	}
	m.Depression -= relief

	m.clamp()
}

// HealthPenalty is the mental contribution to derived physical health.
func (m *MentalHealth) HealthPenalty() int {
	switch {
	case m.Depression > 50:
		return -10
	case m.Anxiety > 60:
		return -5
	default:
		return 0
	}
}

// RecordBullying registers an incident of the given severity (clamped to 1–5)
// and returns the stress increase the caller must apply to the resource model.
func (m *MentalHealth) RecordBullying(severity int) (stressDelta int) {
	if severity < 1 {
		severity = 1
	}
	if severity > 5 {
		severity = 5
	}
	m.BullyingIncidents++
	m.Depression += 2 * severity
	m.Anxiety += 3 * severity
	m.SelfEsteem -= severity
	m.clamp()
	return 5 + 3*severity
}

// RecordBreakup increments the breakup counter.
func (m *MentalHealth) RecordBreakup() {
	m.Breakups++
}

// ApplyTherapy applies one session's effects. Affordability is the caller's
// concern; by the time this runs the session is paid for. The fifth cumulative
// session permanently widens the support network.
func (m *MentalHealth) ApplyTherapy(today time.Time) {
	m.Depression -= 15
	m.Anxiety -= 10
	m.SelfEsteem += 5
	m.TherapySessions++
	if m.TherapySessions == 5 {
		m.SupportNetwork += 10
	}
	m.LastTherapy = today
	m.clamp()
}

// Happiness is derived, never stored.
func (m *MentalHealth) Happiness() int {
	return ClampStat(80 - m.Depression/2 - m.Anxiety/3 + m.SelfEsteem/4)
}

func (m *MentalHealth) clamp() {
	m.Depression = ClampStat(m.Depression)
	m.Anxiety = ClampStat(m.Anxiety)
	m.SelfEsteem = ClampStat(m.SelfEsteem)
	m.SupportNetwork = ClampStat(m.SupportNetwork)
	m.CopingSkills = ClampStat(m.CopingSkills)
}

// Validate reports the first field outside its domain, for snapshot loading.
func (m *MentalHealth) Validate() error {
	if err := validateRange(map[string]int{
		"depression":      m.Depression,
		"anxiety":         m.Anxiety,
		"self_esteem":     m.SelfEsteem,
		"support_network": m.SupportNetwork,
		"coping_skills":   m.CopingSkills,
	}); err != nil {
		return err
	}
	if m.BullyingIncidents < 0 || m.Breakups < 0 || m.TherapySessions < 0 {
		return fmt.Errorf("negative counter")
	}
	return nil
}
