// Package storage 对象存储客户端, 媒体文件本体都放这里
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/par4d15e/blogbackendserver-sub001/config"
)

var (
	Client *minio.Client
	bucket string
)

// InitStorage 初始化 S3 兼容客户端并确保 bucket 存在
func InitStorage() {
	storageConf := config.Conf.Storage

	cli, err := minio.New(storageConf.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(storageConf.AccessKey, storageConf.SecretKey, ""),
		Secure: storageConf.UseSSL,
	})
	if err != nil {
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := cli.BucketExists(ctx, storageConf.Bucket)
	if err != nil {
		panic(err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, storageConf.Bucket, minio.MakeBucketOptions{}); err != nil {
			panic(err)
		}
	}

	Client = cli
	bucket = storageConf.Bucket
}

// Put 流式上传, 不落本地磁盘
func Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := Client.PutObject(ctx, bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

// Remove 删除对象
func Remove(ctx context.Context, key string) error {
	return Client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{})
}

// PresignGet 生成限时下载地址
func PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := Client.PresignedGetObject(ctx, bucket, key, expiry, url.Values{})
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// PublicURL 对象的公开访问地址
func PublicURL(key string) string {
	return fmt.Sprintf("%s/%s", strings.TrimRight(config.Conf.Storage.PublicURL, "/"), key)
}

// KeyFromURL 从公开地址反推对象 key
func KeyFromURL(rawURL string) string {
	prefix := strings.TrimRight(config.Conf.Storage.PublicURL, "/") + "/"
	return strings.TrimPrefix(rawURL, prefix)
}
