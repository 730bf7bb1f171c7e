package subscriber

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/par4d15e/blogbackendserver-sub001/internal/database"
	"github.com/par4d15e/blogbackendserver-sub001/internal/model/subscriber"
	"github.com/par4d15e/blogbackendserver-sub001/internal/task"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/response"
)

type SubscriberService struct {
	repo *SubscriberRepository
}

func NewSubscriberService() *SubscriberService {
	return &SubscriberService{repo: NewSubscriberRepository(database.MySQLDB)}
}

// Subscribe 订阅, 幂等
func (s *SubscriberService) Subscribe(req SubscribeRequest) *response.BusinessError {
	if err := s.repo.EnsureActive(req.Email); err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("订阅失败"),
			response.WithError(err),
		)
	}
	return nil
}

// Unsubscribe 退订
func (s *SubscriberService) Unsubscribe(req UnsubscribeRequest) *response.BusinessError {
	ok, err := s.repo.Deactivate(req.Email)
	if err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("退订失败"),
			response.WithError(err),
		)
	}
	if !ok {
		return response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("该邮箱不在订阅列表中"),
		)
	}
	return nil
}

// ListActive 后台查看活跃订阅者
func (s *SubscriberService) ListActive() ([]subscriber.Subscriber, *response.BusinessError) {
	subs, err := s.repo.ListActive()
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询订阅者失败"),
			response.WithError(err),
		)
	}
	return subs, nil
}

// Broadcast 向全部活跃订阅者投递群发邮件任务
// 投递失败的订阅者跳过, 只对成功投递的累计发送次数
func (s *SubscriberService) Broadcast(req BroadcastRequest) (*BroadcastResponse, *response.BusinessError) {
	subs, err := s.repo.ListActive()
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询订阅者失败"),
			response.WithError(err),
		)
	}

	ctx := context.Background()
	sent := make([]uint, 0, len(subs))
	for _, sub := range subs {
		t := task.EmailTask{
			Type:    task.EmailBroadcast,
			To:      sub.Email,
			Subject: req.Subject,
			Message: req.Message,
		}
		if err := task.EnqueueEmail(ctx, t); err != nil {
			logrus.WithError(err).WithField("email", sub.Email).Warn("投递群发任务失败")
			continue
		}
		sent = append(sent, sub.ID)
	}

	if err := s.repo.MarkSent(sent); err != nil {
		logrus.WithError(err).Warn("更新订阅者发送记录失败")
	}

	return &BroadcastResponse{Enqueued: len(sent)}, nil
}
