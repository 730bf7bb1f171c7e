package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/par4d15e/blogbackendserver-sub001/config"
	"github.com/par4d15e/blogbackendserver-sub001/internal/database"
	paymentmodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/payment"
	projectmodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/project"
	"github.com/par4d15e/blogbackendserver-sub001/internal/task"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/email"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/response"
)

type PaymentService struct {
	repo   *PaymentRepository
	stripe *stripeClient
}

func NewPaymentService() *PaymentService {
	return &PaymentService{
		repo:   NewPaymentRepository(database.MySQLDB),
		stripe: newStripeClient(),
	}
}

// generateOrderNumber 时间戳 + 用户ID + 栏目ID + 随机后缀
func generateOrderNumber(userID uint, sectionID *uint) string {
	section := uint(0)
	if sectionID != nil {
		section = *sectionID
	}
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return fmt.Sprintf("%s%d%d%s", time.Now().Format("20060102150405"), userID, section, suffix)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CreateIntent 创建 Stripe 支付意图
// 1. 校验用户和项目, 项目必须已发布且配置了价格
// 2. 取税率快照计算税费和总额
// 3. 创建 Stripe 商品/客户/支付意图, 订单信息全部扁平化进 metadata
func (s *PaymentService) CreateIntent(userID uint, req *CreateIntentRequest) (*CreateIntentResponse, *response.BusinessError) {
	u, err := s.repo.GetUser(userID)
	if err != nil {
		return nil, internalError("创建支付失败", err)
	}
	if u == nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("用户不存在"),
		)
	}

	p, err := s.repo.GetPayableProject(req.ProjectID)
	if err != nil {
		return nil, internalError("创建支付失败", err)
	}
	if p == nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("项目不存在"),
		)
	}
	if p.Monetization == nil || p.Monetization.Price <= 0 {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("项目不支持购买"),
		)
	}

	tax, bizErr := s.resolveTax(p)
	if bizErr != nil {
		return nil, bizErr
	}

	price := p.Monetization.Price
	taxAmount := round2(price * tax.TaxRate / 100)
	finalAmount := round2(price + taxAmount)
	orderNumber := generateOrderNumber(userID, p.SectionID)

	userName := u.Email
	if u.Username != nil {
		userName = *u.Username
	}
	coverURL := ""
	if p.Cover != nil {
		coverURL = p.Cover.OriginalFilepathURL
	}
	sectionName := ""
	if p.Section != nil {
		sectionName = p.Section.ChineseTitle
	}

	metadata := map[string]string{
		"user_id":              strconv.FormatUint(uint64(userID), 10),
		"user_name":            userName,
		"user_email":           u.Email,
		"project_id":           strconv.FormatUint(uint64(p.ID), 10),
		"cover_url":            coverURL,
		"project_name":         p.ChineseTitle,
		"project_slug":         p.Slug,
		"project_description":  p.ChineseDescription,
		"project_price":        strconv.FormatFloat(price, 'f', 2, 64),
		"project_section_name": sectionName,
		"tax_name":             tax.TaxName,
		"tax_rate":             strconv.FormatFloat(tax.TaxRate, 'f', 2, 64),
		"tax_amount":           strconv.FormatFloat(taxAmount, 'f', 2, 64),
		"final_amount":         strconv.FormatFloat(finalAmount, 'f', 2, 64),
		"order_number":         orderNumber,
	}

	amountCents := int64(math.Round(finalAmount * 100))
	if _, err := s.stripe.CreateProduct(p.ChineseTitle, p.ChineseDescription, coverURL, amountCents, map[string]string{
		"project_id": metadata["project_id"],
		"user_id":    metadata["user_id"],
	}); err != nil {
		return nil, stripeError("创建商品失败", err)
	}

	customerID, err := s.stripe.FindOrCreateCustomer(u.Email, userName)
	if err != nil {
		return nil, stripeError("创建客户失败", err)
	}

	intent, err := s.stripe.CreateIntent(amountCents, customerID, p.ChineseDescription, metadata)
	if err != nil {
		return nil, stripeError("创建支付意图失败", err)
	}

	logrus.WithFields(logrus.Fields{
		"order_number": orderNumber,
		"amount":       finalAmount,
		"intent_id":    intent.ID,
	}).Info("支付意图创建成功")

	return &CreateIntentResponse{
		ClientSecret: intent.ClientSecret,
		OrderNumber:  orderNumber,
		FinalAmount:  finalAmount,
	}, nil
}

// resolveTax 优先用项目绑定的税率, 未绑定或停用时回退到全局启用的税率
func (s *PaymentService) resolveTax(p *projectmodel.Project) (*paymentmodel.Tax, *response.BusinessError) {
	if p.Monetization.Tax != nil && p.Monetization.Tax.IsActive {
		return p.Monetization.Tax, nil
	}

	tax, err := s.repo.GetActiveTax()
	if err != nil {
		return nil, internalError("创建支付失败", err)
	}
	if tax == nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("未配置可用税率"),
		)
	}
	return tax, nil
}

// HandleWebhook Stripe 回调入口, 验签后分发支付事件
func (s *PaymentService) HandleWebhook(payload []byte, signature string) *response.BusinessError {
	event, err := webhook.ConstructEvent(payload, signature, config.Conf.Stripe.WebhookSecret)
	if err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Unauthorized),
			response.WithErrorMessage("回调签名验证失败"),
			response.WithError(err),
		)
	}

	var intent stripe.PaymentIntent
	switch event.Type {
	case "payment_intent.succeeded", "payment_intent.payment_failed", "payment_intent.canceled":
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return response.NewBusinessError(
				response.WithErrorCode(response.ParseError),
				response.WithErrorMessage("回调事件解析失败"),
				response.WithError(err),
			)
		}
	default:
		// 未订阅的事件直接确认
		return nil
	}

	switch event.Type {
	case "payment_intent.succeeded":
		return s.processPaymentEvent(&intent, paymentmodel.StatusSuccess, "success")
	case "payment_intent.payment_failed":
		return s.processPaymentEvent(&intent, paymentmodel.StatusFailed, "failed")
	default:
		return s.processPaymentEvent(&intent, paymentmodel.StatusCancel, "cancelled")
	}
}

// 回调 metadata 必须带全订单快照才能落库
var requiredMetadata = []string{
	"user_id", "user_name", "user_email", "project_id", "project_name",
	"project_price", "tax_name", "tax_rate", "tax_amount", "final_amount",
	"order_number",
}

func validateMetadata(md map[string]string) error {
	for _, field := range requiredMetadata {
		if md[field] == "" {
			return fmt.Errorf("回调事件缺少元数据: %s", field)
		}
	}
	return nil
}

// parsePaymentType Stripe 支付方式名称映射到内部枚举
func parsePaymentType(name string) paymentmodel.PaymentType {
	switch name {
	case "link":
		return paymentmodel.TypeLink
	case "klarna":
		return paymentmodel.TypeKlarna
	case "afterpay_clearpay":
		return paymentmodel.TypeAfterpayClearpay
	case "alipay":
		return paymentmodel.TypeAlipay
	default:
		return paymentmodel.TypeCard
	}
}

func paymentTypeName(t paymentmodel.PaymentType) string {
	switch t {
	case paymentmodel.TypeLink:
		return "link"
	case paymentmodel.TypeKlarna:
		return "klarna"
	case paymentmodel.TypeAfterpayClearpay:
		return "afterpay_clearpay"
	case paymentmodel.TypeAlipay:
		return "alipay"
	default:
		return "card"
	}
}

// processPaymentEvent 持久化支付记录, 成功时追加发票邮件和管理员通知
func (s *PaymentService) processPaymentEvent(intent *stripe.PaymentIntent, status paymentmodel.PaymentStatus, statusName string) *response.BusinessError {
	md := intent.Metadata
	if err := validateMetadata(md); err != nil {
		logrus.WithError(err).WithField("intent_id", intent.ID).Error("支付回调元数据不完整")
		return response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("回调元数据不完整"),
			response.WithError(err),
		)
	}

	// Stripe 可能重复投递同一事件
	exists, err := s.repo.OrderNumberExists(md["order_number"])
	if err != nil {
		return internalError("处理支付回调失败", err)
	}
	if exists {
		logrus.WithField("order_number", md["order_number"]).Info("支付记录已存在, 跳过重复回调")
		return nil
	}

	pmID := ""
	if intent.PaymentMethod != nil {
		pmID = intent.PaymentMethod.ID
	}
	paymentType := parsePaymentType(s.stripe.GetPaymentMethodType(pmID))

	userID := parseUint(md["user_id"])
	projectID := parseUint(md["project_id"])
	taxRate := parseFloat(md["tax_rate"])
	taxAmount := parseFloat(md["tax_amount"])
	finalAmount := parseFloat(md["final_amount"])
	taxName := md["tax_name"]

	record := paymentmodel.PaymentRecord{
		UserID:        &userID,
		ProjectID:     &projectID,
		TaxName:       &taxName,
		TaxRate:       &taxRate,
		TaxAmount:     &taxAmount,
		OrderNumber:   md["order_number"],
		PaymentType:   paymentType,
		Amount:        finalAmount,
		PaymentStatus: status,
	}
	if err := s.repo.CreateRecord(&record); err != nil {
		return internalError("保存支付记录失败", err)
	}

	if status == paymentmodel.StatusSuccess {
		s.notifyPaymentSuccess(md, &record, statusName)
	}

	logrus.WithFields(logrus.Fields{
		"order_number": record.OrderNumber,
		"status":       statusName,
	}).Info("支付记录已保存")
	return nil
}

// notifyPaymentSuccess 发票邮件 + 管理员通知, 失败只记日志
func (s *PaymentService) notifyPaymentSuccess(md map[string]string, record *paymentmodel.PaymentRecord, statusName string) {
	ctx := context.Background()
	paymentDate := record.CreatedAt.Format("2006-01-02 15:04:05")

	if err := task.EnqueueEmail(ctx, task.EmailTask{
		Type: task.EmailInvoice,
		To:   md["user_email"],
		Invoice: &email.InvoiceData{
			UserName:      md["user_name"],
			OrderNumber:   record.OrderNumber,
			ProjectName:   md["project_name"],
			ProjectPrice:  parseFloat(md["project_price"]),
			TaxName:       md["tax_name"],
			TaxAmount:     parseFloat(md["tax_amount"]),
			FinalAmount:   record.Amount,
			PaymentType:   paymentTypeName(record.PaymentType),
			PaymentStatus: statusName,
			PaymentDate:   paymentDate,
		},
	}); err != nil {
		logrus.WithError(err).WithField("order_number", record.OrderNumber).Error("发票邮件入队失败")
	}

	message := fmt.Sprintf(
		"用户 %s (%s) 完成了一笔支付\n\n订单号: %s\n原始金额: $%.2f\n税费: $%.2f\n最终金额: $%.2f\n支付方式: %s\n日期: %s\n请登录后台管理页面查看详情。",
		md["user_name"], md["user_email"], record.OrderNumber,
		parseFloat(md["project_price"]), parseFloat(md["tax_amount"]), record.Amount,
		paymentTypeName(record.PaymentType), paymentDate,
	)
	if err := task.EnqueueEmail(ctx, task.EmailTask{
		Type:             task.EmailNotification,
		NotificationType: task.NotificationPaymentRequest,
		Message:          message,
	}); err != nil {
		logrus.WithError(err).WithField("order_number", record.OrderNumber).Error("支付通知入队失败")
	}
}

// GetSuccessDetails 通过支付意图查询成功订单详情
func (s *PaymentService) GetSuccessDetails(intentID string) (*SuccessDetailsResponse, *response.BusinessError) {
	intent, err := s.stripe.GetIntent(intentID)
	if err != nil {
		return nil, stripeError("查询支付详情失败", err)
	}
	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("支付未完成"),
		)
	}

	md := intent.Metadata
	if err := validateMetadata(md); err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("支付元数据不完整"),
			response.WithError(err),
		)
	}

	pmID := ""
	if intent.PaymentMethod != nil {
		pmID = intent.PaymentMethod.ID
	}

	return &SuccessDetailsResponse{
		PaymentIntentID: intentID,
		PaymentStatus:   string(intent.Status),
		OrderNumber:     md["order_number"],
		PaymentDate:     intent.Created,
		User: SuccessUser{
			UserID:   parseUint(md["user_id"]),
			UserName: md["user_name"],
			Email:    md["user_email"],
		},
		Project: SuccessProject{
			ProjectID:          parseUint(md["project_id"]),
			CoverURL:           md["cover_url"],
			ProjectName:        md["project_name"],
			ProjectSlug:        md["project_slug"],
			ProjectDescription: md["project_description"],
			ProjectPrice:       parseFloat(md["project_price"]),
			SectionName:        md["project_section_name"],
		},
		Tax: SuccessTax{
			TaxName:   md["tax_name"],
			TaxRate:   parseFloat(md["tax_rate"]),
			TaxAmount: parseFloat(md["tax_amount"]),
		},
		FinalAmount: parseFloat(md["final_amount"]),
		PaymentType: s.stripe.GetPaymentMethodType(pmID),
	}, nil
}

// ListRecords 管理员看全部, 普通用户只看自己的
func (s *PaymentService) ListRecords(userID uint, isAdmin bool, q RecordListQuery) (*RecordListResponse, *response.BusinessError) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 20
	}

	filterUser := userID
	if isAdmin {
		filterUser = 0
	}
	records, total, err := s.repo.ListRecords(filterUser, q.Page, q.PageSize)
	if err != nil {
		return nil, internalError("查询支付记录失败", err)
	}

	return &RecordListResponse{
		Records:  records,
		Total:    total,
		Page:     q.Page,
		PageSize: q.PageSize,
	}, nil
}

func parseUint(s string) uint {
	v, _ := strconv.ParseUint(s, 10, 64)
	return uint(v)
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func internalError(msg string, err error) *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.Fail),
		response.WithErrorMessage(msg),
		response.WithError(err),
	)
}

func stripeError(msg string, err error) *response.BusinessError {
	logrus.WithError(err).Error(msg)
	return response.NewBusinessError(
		response.WithErrorCode(response.Fail),
		response.WithErrorMessage(msg),
		response.WithError(err),
	)
}
