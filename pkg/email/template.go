package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// Template 邮件模板
type Template struct {
	tmpl *template.Template
}

// NewTemplate 从 HTML 字符串创建模板
func NewTemplate(htmlContent string) (*Template, error) {
	tmpl, err := template.New("email").Parse(htmlContent)
	if err != nil {
		return nil, fmt.Errorf("解析邮件模板失败: %w", err)
	}
	return &Template{tmpl: tmpl}, nil
}

// Render 渲染模板
func (t *Template) Render(data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("渲染邮件模板失败: %w", err)
	}
	return buf.String(), nil
}

// SendWithTemplate 使用模板发送邮件
func (c *Client) SendWithTemplate(to string, subject string, tmpl *Template, data interface{}) error {
	body, err := tmpl.Render(data)
	if err != nil {
		return err
	}
	return c.SendHTML(to, subject, body)
}

// 预定义常用邮件模板

// VerificationCodeTemplate 注册验证码邮件模板
const VerificationCodeTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #4CAF50; color: white; padding: 20px; text-align: center; }
        .content { background-color: #f9f9f9; padding: 30px; border: 1px solid #ddd; }
        .code { font-size: 32px; font-weight: bold; color: #4CAF50; text-align: center;
                letter-spacing: 5px; padding: 20px; background-color: #fff; border: 2px dashed #4CAF50; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>邮箱验证码 / Verification Code</h1>
        </div>
        <div class="content">
            <p>您好，感谢注册 {{.AppName}}！请使用以下验证码完成账号激活：</p>
            <div class="code">{{.Code}}</div>
            <p>该验证码将在 {{.ExpireMinutes}} 分钟后过期，请尽快使用。</p>
            <p>如果这不是您的操作，请忽略此邮件。</p>
        </div>
        <div class="footer">
            <p>此邮件由系统自动发送，请勿回复。</p>
        </div>
    </div>
</body>
</html>
`

// VerificationCodeData 验证码模板数据
type VerificationCodeData struct {
	AppName       string // 应用名称
	Code          string // 验证码
	ExpireMinutes int    // 过期时间（分钟）
}

// SendVerificationCode 发送注册验证码邮件
func (c *Client) SendVerificationCode(to string, appName string, code string, expireMinutes int) error {
	tmpl, err := NewTemplate(VerificationCodeTemplate)
	if err != nil {
		return err
	}

	data := VerificationCodeData{
		AppName:       appName,
		Code:          code,
		ExpireMinutes: expireMinutes,
	}

	return c.SendWithTemplate(to, fmt.Sprintf("【%s】邮箱验证码", appName), tmpl, data)
}

// ResetPasswordTemplate 重置密码验证码邮件模板
const ResetPasswordTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #F44336; color: white; padding: 20px; text-align: center; }
        .content { background-color: #f9f9f9; padding: 30px; border: 1px solid #ddd; }
        .code { font-size: 32px; font-weight: bold; color: #F44336; text-align: center;
                letter-spacing: 5px; padding: 20px; background-color: #fff; border: 2px dashed #F44336;
                margin: 20px 0; }
        .warning { background-color: #ffebee; border-left: 4px solid #F44336; padding: 12px;
                   margin: 20px 0; font-size: 14px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>密码重置验证 / Password Reset</h1>
        </div>
        <div class="content">
            <p>我们收到了您重置 {{.AppName}} 账号密码的请求。请使用以下验证码完成密码重置：</p>
            <div class="code">{{.Code}}</div>
            <p>验证码有效期：{{.ExpireMinutes}} 分钟。</p>
            <div class="warning">
                如果您没有申请重置密码，请忽略此邮件；完成重置后所有设备将自动登出。
            </div>
        </div>
        <div class="footer">
            <p>此邮件由系统自动发送，请勿回复。</p>
        </div>
    </div>
</body>
</html>
`

// SendResetPasswordCode 发送重置密码验证码邮件
func (c *Client) SendResetPasswordCode(to string, appName string, code string, expireMinutes int) error {
	tmpl, err := NewTemplate(ResetPasswordTemplate)
	if err != nil {
		return err
	}

	data := VerificationCodeData{
		AppName:       appName,
		Code:          code,
		ExpireMinutes: expireMinutes,
	}

	return c.SendWithTemplate(to, fmt.Sprintf("【%s】密码重置验证码", appName), tmpl, data)
}

// GreetingTemplate 欢迎邮件模板
const GreetingTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #2196F3; color: white; padding: 20px; text-align: center; }
        .content { background-color: #f9f9f9; padding: 30px; border: 1px solid #ddd; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>欢迎来到 {{.AppName}}</h1>
        </div>
        <div class="content">
            <p>Hi {{.Username}}，</p>
            <p>欢迎加入 {{.AppName}}！您可以在这里浏览博客、项目，留言交流，收藏喜欢的内容。</p>
        </div>
        <div class="footer">
            <p>此邮件由系统自动发送，请勿回复。</p>
        </div>
    </div>
</body>
</html>
`

// GreetingData 欢迎邮件模板数据
type GreetingData struct {
	AppName  string // 应用名称
	Username string // 用户名
}

// SendGreeting 发送欢迎邮件（首次登录触发）
func (c *Client) SendGreeting(to string, appName string, username string) error {
	tmpl, err := NewTemplate(GreetingTemplate)
	if err != nil {
		return err
	}

	data := GreetingData{
		AppName:  appName,
		Username: username,
	}

	return c.SendWithTemplate(to, fmt.Sprintf("欢迎来到 %s", appName), tmpl, data)
}

// InvoiceTemplate 支付发票邮件模板
const InvoiceTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #673AB7; color: white; padding: 20px; text-align: center; }
        .content { background-color: #f9f9f9; padding: 30px; border: 1px solid #ddd; }
        table { width: 100%; border-collapse: collapse; margin: 20px 0; }
        td { padding: 8px; border-bottom: 1px solid #eee; }
        .total { font-weight: bold; color: #673AB7; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>支付确认 / Payment Receipt</h1>
        </div>
        <div class="content">
            <p>Hi {{.UserName}}，感谢您的支持！以下是您本次支付的明细：</p>
            <table>
                <tr><td>订单号</td><td>{{.OrderNumber}}</td></tr>
                <tr><td>项目</td><td>{{.ProjectName}}</td></tr>
                <tr><td>价格</td><td>${{printf "%.2f" .ProjectPrice}}</td></tr>
                <tr><td>{{.TaxName}}</td><td>${{printf "%.2f" .TaxAmount}}</td></tr>
                <tr class="total"><td>合计</td><td>${{printf "%.2f" .FinalAmount}}</td></tr>
                <tr><td>支付方式</td><td>{{.PaymentType}}</td></tr>
                <tr><td>支付状态</td><td>{{.PaymentStatus}}</td></tr>
                <tr><td>日期</td><td>{{.PaymentDate}}</td></tr>
            </table>
        </div>
        <div class="footer">
            <p>此邮件由系统自动发送，请勿回复。</p>
        </div>
    </div>
</body>
</html>
`

// InvoiceData 发票模板数据
type InvoiceData struct {
	UserName      string
	OrderNumber   string
	ProjectName   string
	ProjectPrice  float64
	TaxName       string
	TaxAmount     float64
	FinalAmount   float64
	PaymentType   string
	PaymentStatus string
	PaymentDate   string
}

// SendInvoice 发送支付发票邮件
func (c *Client) SendInvoice(to string, appName string, data InvoiceData) error {
	tmpl, err := NewTemplate(InvoiceTemplate)
	if err != nil {
		return err
	}

	return c.SendWithTemplate(to, fmt.Sprintf("【%s】支付确认 %s", appName, data.OrderNumber), tmpl, data)
}
