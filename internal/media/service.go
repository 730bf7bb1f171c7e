package media

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/par4d15e/blogbackendserver-sub001/internal/database"
	mediamodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/media"
	"github.com/par4d15e/blogbackendserver-sub001/internal/storage"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/response"
)

// 上传大小上限 50MB
const maxUploadSize = 50 << 20

// 下载地址有效期
const presignExpiry = 15 * time.Minute

type MediaService struct {
	repo *MediaRepository
}

func NewMediaService() *MediaService {
	return &MediaService{repo: NewMediaRepository(database.MySQLDB)}
}

// List 管理端媒体列表
func (s *MediaService) List(q ListQuery) (*MediaListResponse, *response.BusinessError) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 20
	}

	media, total, err := s.repo.List(q)
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询媒体列表失败"),
			response.WithError(err),
		)
	}
	return &MediaListResponse{
		Media:    media,
		Total:    total,
		Page:     q.Page,
		PageSize: q.PageSize,
	}, nil
}

// detectType 按 Content-Type 前缀归类
func detectType(contentType string) mediamodel.MediaType {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return mediamodel.TypeImage
	case strings.HasPrefix(contentType, "video/"):
		return mediamodel.TypeVideo
	case strings.HasPrefix(contentType, "audio/"):
		return mediamodel.TypeAudio
	case contentType == "application/pdf" || strings.HasPrefix(contentType, "text/"):
		return mediamodel.TypeDocument
	default:
		return mediamodel.TypeOther
	}
}

// Upload 上传文件到对象存储并落库
// 头像上传会清除该用户之前的头像标记
func (s *MediaService) Upload(ctx context.Context, userID uint, file *multipart.FileHeader, isAvatar bool) (*mediamodel.Media, *response.BusinessError) {
	if file.Size > maxUploadSize {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("文件大小超过限制"),
		)
	}

	contentType := file.Header.Get("Content-Type")
	if isAvatar && !strings.HasPrefix(contentType, "image/") {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("头像必须是图片"),
		)
	}

	src, err := file.Open()
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("读取上传文件失败"),
			response.WithError(err),
		)
	}
	defer src.Close()

	// 对象以 uuid 命名, 原始文件名只留在元信息里
	id := uuid.NewString()
	key := id + strings.ToLower(filepath.Ext(file.Filename))
	if err := storage.Put(ctx, key, src, file.Size, contentType); err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("上传文件失败"),
			response.WithError(err),
		)
	}

	if isAvatar {
		if err := s.repo.ClearAvatar(userID); err != nil {
			logrus.WithError(err).WithField("user_id", userID).Warn("清除旧头像标记失败")
		}
	}

	m := mediamodel.Media{
		UUID:                id,
		UserID:              userID,
		Type:                detectType(contentType),
		IsAvatar:            isAvatar,
		FileName:            file.Filename,
		OriginalFilepathURL: storage.PublicURL(key),
		FileSize:            file.Size,
	}
	if err := s.repo.Create(&m); err != nil {
		// 落库失败时回收已上传的对象
		if removeErr := storage.Remove(ctx, key); removeErr != nil {
			logrus.WithError(removeErr).WithField("key", key).Warn("回收存储对象失败")
		}
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("保存媒体信息失败"),
			response.WithError(err),
		)
	}
	return &m, nil
}

// Presign 限时下载地址
func (s *MediaService) Presign(ctx context.Context, mediaUUID string) (*PresignResponse, *response.BusinessError) {
	m, err := s.repo.GetByUUID(mediaUUID)
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询媒体失败"),
			response.WithError(err),
		)
	}
	if m == nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("媒体不存在"),
		)
	}

	url, err := storage.PresignGet(ctx, storage.KeyFromURL(m.OriginalFilepathURL), presignExpiry)
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("生成下载地址失败"),
			response.WithError(err),
		)
	}
	return &PresignResponse{URL: url, ExpiresIn: int(presignExpiry.Seconds())}, nil
}

// Delete 删除存储对象和数据库记录, 缩略图和水印一并清理
func (s *MediaService) Delete(ctx context.Context, id uint) *response.BusinessError {
	m, err := s.repo.GetByID(id)
	if err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("删除媒体失败"),
			response.WithError(err),
		)
	}
	if m == nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("媒体不存在"),
		)
	}

	removeObjects(ctx, m)
	if err := s.repo.Delete(id); err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("删除媒体失败"),
			response.WithError(err),
		)
	}
	return nil
}

// AvatarURL 用户当前头像地址, 没有头像返回 nil
func (s *MediaService) AvatarURL(userID uint) (*string, error) {
	m, err := s.repo.GetAvatar(userID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	return &m.OriginalFilepathURL, nil
}

// CleanupUserMedia 清理用户名下全部媒体, 账号删除任务调用
func (s *MediaService) CleanupUserMedia(ctx context.Context, userID uint) error {
	media, err := s.repo.ListByUser(userID)
	if err != nil {
		return fmt.Errorf("查询用户媒体: %w", err)
	}

	for i := range media {
		removeObjects(ctx, &media[i])
		if err := s.repo.Delete(media[i].ID); err != nil {
			logrus.WithError(err).WithField("media_id", media[i].ID).Warn("删除媒体记录失败")
		}
	}
	return nil
}

// removeObjects 删除原图/缩略图/水印对象, 失败只记日志不阻断
func removeObjects(ctx context.Context, m *mediamodel.Media) {
	urls := []string{m.OriginalFilepathURL}
	if m.ThumbnailFilepathURL != nil {
		urls = append(urls, *m.ThumbnailFilepathURL)
	}
	if m.WatermarkFilepathURL != nil {
		urls = append(urls, *m.WatermarkFilepathURL)
	}

	for _, u := range urls {
		if err := storage.Remove(ctx, storage.KeyFromURL(u)); err != nil {
			logrus.WithError(err).WithField("url", u).Warn("删除存储对象失败")
		}
	}
}
