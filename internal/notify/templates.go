package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/pratik-mahalle/threatwatch/internal/domain/alert"
	"github.com/pratik-mahalle/threatwatch/internal/domain/stats"
	"github.com/pratik-mahalle/threatwatch/internal/domain/threat"
)

var severityColors = map[threat.Severity]string{
	threat.SeverityCritical: "#dc2626",
	threat.SeverityHigh:     "#f97316",
	threat.SeverityLow:      "#3b82f6",
}

const defaultSeverityColor = "#eab308"

// SeverityColor is the banner colour for a threat email
func SeverityColor(s threat.Severity) string {
	if c, ok := severityColors[s]; ok {
		return c
	}
	return defaultSeverityColor
}

var threatEmailTmpl = template.Must(template.New("threat").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto; border: 1px solid #e2e8f0; border-radius: 10px; overflow: hidden;">
  <div style="background-color: {{.Color}}; padding: 20px; text-align: center;">
    <h1 style="color: white; margin: 0; font-size: 24px;">Security Alert: {{.Severity}}</h1>
  </div>
  <div style="padding: 30px; background-color: #f8fafc;">
    <p style="color: #475569; font-size: 16px;"><strong>ThreatWatch</strong> has detected a potential threat on your network.</p>
    <table style="width: 100%; border-collapse: collapse; background-color: white;">
      <tr><td style="padding: 8px; color: #64748b;">Prediction</td><td style="padding: 8px; font-weight: bold;">{{.Label}}</td></tr>
      <tr><td style="padding: 8px; color: #64748b;">Source IP</td><td style="padding: 8px; font-family: monospace;">{{.Source}}</td></tr>
      <tr><td style="padding: 8px; color: #64748b;">Confidence</td><td style="padding: 8px;">{{.Confidence}}</td></tr>
      <tr><td style="padding: 8px; color: #64748b;">Time</td><td style="padding: 8px;">{{.Time}}</td></tr>
    </table>
    <p style="color: #94a3b8; font-size: 12px; margin-top: 20px; text-align: center;">Alert ID: {{.AlertID}}</p>
  </div>
</div>
`))

// ThreatEmail renders the subject and HTML body for an alert
func ThreatEmail(a alert.Alert) (subject, body string, err error) {
	subject = fmt.Sprintf("%s Threat Detected: %s", a.Severity, a.VerdictLabel)

	var buf bytes.Buffer
	err = threatEmailTmpl.Execute(&buf, struct {
		Color      string
		Severity   threat.Severity
		Label      threat.Label
		Source     string
		Confidence string
		Time       string
		AlertID    int64
	}{
		Color:      SeverityColor(a.Severity),
		Severity:   a.Severity,
		Label:      a.VerdictLabel,
		Source:     a.SourceAddress,
		Confidence: FormatConfidence(a.Confidence),
		Time:       a.CreatedAt.UTC().Format(time.RFC1123),
		AlertID:    a.ID,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to render threat email: %w", err)
	}
	return subject, buf.String(), nil
}

// FormatConfidence renders a probability as a percentage with one decimal
func FormatConfidence(p float64) string {
	return fmt.Sprintf("%.1f%%", p*100)
}

// ThreatSMS is the short text for the secondary channel
func ThreatSMS(label threat.Label, source string, severity threat.Severity) string {
	return fmt.Sprintf("Alert: %s detected from %s. Severity: %s.", label, source, severity)
}

var weeklyReportTmpl = template.Must(template.New("weekly").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto;">
  <h1 style="color: #0f172a;">Weekly Threat Report</h1>
  <p style="color: #475569;">{{.Period}}</p>
  <p><strong>{{.Stats.TotalScans}}</strong> flows analysed, <strong>{{.Stats.TotalThreats}}</strong> classified as attacks.</p>
  <h2 style="color: #0f172a; font-size: 18px;">By severity</h2>
  <table style="border-collapse: collapse;">
  {{- range .Stats.SeverityDistribution}}
    <tr><td style="padding: 4px 12px; color: {{.Color}};">{{.Name}}</td><td style="padding: 4px 12px;">{{.Value}}</td></tr>
  {{- end}}
  </table>
  <h2 style="color: #0f172a; font-size: 18px;">By status</h2>
  <table style="border-collapse: collapse;">
  {{- range .Stats.StatusDistribution}}
    <tr><td style="padding: 4px 12px; color: {{.Color}};">{{.Name}}</td><td style="padding: 4px 12px;">{{.Value}}</td></tr>
  {{- end}}
  </table>
</div>
`))

// WeeklyReport renders the weekly summary email for one user
func WeeklyReport(s *stats.Stats, from, to time.Time) (subject, body string, err error) {
	period := fmt.Sprintf("%s to %s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	subject = "Weekly Threat Report: " + period

	var buf bytes.Buffer
	err = weeklyReportTmpl.Execute(&buf, struct {
		Period string
		Stats  *stats.Stats
	}{Period: period, Stats: s})
	if err != nil {
		return "", "", fmt.Errorf("failed to render weekly report: %w", err)
	}
	return subject, buf.String(), nil
}

const newsletterConfirmationHTML = `<div style="font-family: Arial, sans-serif; max-width: 500px; margin: auto; border: 1px solid #e2e8f0; border-radius: 10px; overflow: hidden;">
  <div style="background-color: #10b981; padding: 20px; text-align: center;">
    <h1 style="color: white; margin: 0; font-size: 24px;">Subscription Confirmed!</h1>
  </div>
  <div style="padding: 30px; background-color: #f8fafc; text-align: center;">
    <p style="color: #475569;">Thank you for subscribing to ThreatWatch updates.</p>
    <p style="color: #94a3b8; font-size: 12px;">If you didn't subscribe, please ignore this email.</p>
  </div>
</div>
`

// NewsletterConfirmation is the mail sent after a newsletter signup
func NewsletterConfirmation() (subject, body string) {
	return "Subscription Confirmed - ThreatWatch", newsletterConfirmationHTML
}
