package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	placeholderEN = "N/A"
	placeholderAR = "غير محدد"
)

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>{{.Subject}}</title></head>
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <div dir="ltr" lang="en" style="text-align: left;">
    <h2>Registration received</h2>
    <p>Dear {{.Name}},</p>
    <p>Thank you for registering for {{.ProgramEN}}. Our team will review your details and activate your access shortly.</p>
    <table style="border-collapse: collapse;">
      <tr><td><strong>Name</strong></td><td>{{.Name}}</td></tr>
      <tr><td><strong>Email</strong></td><td>{{.Email}}</td></tr>
      <tr><td><strong>Program</strong></td><td>{{.ProgramEN}}</td></tr>
{{- range .DetailsEN}}
      <tr><td><strong>{{.Label}}</strong></td><td>{{.Value}}</td></tr>
{{- end}}
    </table>
  </div>
  <hr>
  <div dir="rtl" lang="ar" style="text-align: right;">
    <h2>تم استلام التسجيل</h2>
    <p>عزيزي {{.Name}}،</p>
    <p>شكراً لتسجيلك في {{.ProgramAR}}. سيقوم فريقنا بمراجعة بياناتك وتفعيل اشتراكك قريباً.</p>
    <table style="border-collapse: collapse;">
      <tr><td><strong>الاسم</strong></td><td>{{.Name}}</td></tr>
      <tr><td><strong>البريد الإلكتروني</strong></td><td>{{.Email}}</td></tr>
      <tr><td><strong>البرنامج</strong></td><td>{{.ProgramAR}}</td></tr>
{{- range .DetailsAR}}
      <tr><td><strong>{{.Label}}</strong></td><td>{{.Value}}</td></tr>
{{- end}}
    </table>
  </div>
</body>
</html>
`))

type detailRow struct {
	Label string
	Value string
}

type templateData struct {
	Subject   string
	Name      string
	Email     string
	ProgramEN string
	ProgramAR string
	DetailsEN []detailRow
	DetailsAR []detailRow
}

// Render builds the subject and bilingual HTML body for c.
func Render(c Confirmation) (string, string, error) {
	data := templateData{
		Name:  orPlaceholder(c.Name, placeholderEN),
		Email: orPlaceholder(c.Email, placeholderEN),
	}

	switch c.Program {
	case ProgramProfitPlan:
		data.ProgramEN = "Profit Plan Program"
		data.ProgramAR = "برنامج خطة الأرباح"
		data.DetailsEN = []detailRow{
			{"Plan Amount", orPlaceholder(FormatPlanAmount(c.PlanAmount), placeholderEN)},
		}
		data.DetailsAR = []detailRow{
			{"مبلغ الخطة", orPlaceholder(FormatPlanAmount(c.PlanAmount), placeholderAR)},
		}
	default:
		data.ProgramEN = "Channel Subscription"
		data.ProgramAR = "اشتراك القناة"
		data.DetailsEN = []detailRow{
			{"Channel", orPlaceholder(c.ChannelType, placeholderEN)},
			{"Duration", orPlaceholder(c.SubscriptionDuration, placeholderEN)},
		}
		data.DetailsAR = []detailRow{
			{"القناة", orPlaceholder(c.ChannelType, placeholderAR)},
			{"المدة", orPlaceholder(c.SubscriptionDuration, placeholderAR)},
		}
	}
	data.Subject = fmt.Sprintf("%s confirmation | تأكيد %s", data.ProgramEN, data.ProgramAR)

	var buf bytes.Buffer
	if err := confirmationTemplate.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render confirmation email: %w", err)
	}
	return data.Subject, buf.String(), nil
}

var amountPrinter = message.NewPrinter(language.English)

// FormatPlanAmount renders numeric plan keys as a dollar amount with
// thousands separators and returns other keys unchanged.
func FormatPlanAmount(amount string) string {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return ""
	}
	n, err := strconv.ParseInt(strings.TrimPrefix(amount, "$"), 10, 64)
	if err != nil {
		return amount
	}
	return amountPrinter.Sprintf("$%d", n)
}

func orPlaceholder(v, placeholder string) string {
	if strings.TrimSpace(v) == "" {
		return placeholder
	}
	return v
}
