package task

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/par4d15e/blogbackendserver-sub001/internal/model/user"
)

// ipinfoBase 地理位置查询服务地址, 测试时指向本地桩
var ipinfoBase = "https://ipinfo.io"

var ipinfoClient = &http.Client{Timeout: 5 * time.Second}

// ipInfo ipinfo.io 响应中用到的字段, loc 形如 "39.90,116.40"
type ipInfo struct {
	City string `json:"city"`
	Loc  string `json:"loc"`
}

// enrichClientInfo 首次登录后按 IP 补全用户的城市和经纬度
// 内网或非法 IP 直接跳过, 不算处理失败
func (w *EmailWorker) enrichClientInfo(t EmailTask) error {
	if t.UserID == 0 {
		return fmt.Errorf("客户端信息任务缺少用户ID")
	}
	if !isPublicIP(t.IPAddress) {
		logrus.WithField("ip", t.IPAddress).Debug("非公网 IP, 跳过地理位置查询")
		return nil
	}

	info, err := lookupIPInfo(t.IPAddress)
	if err != nil {
		return fmt.Errorf("查询 IP 地理位置失败: %w", err)
	}

	updates := map[string]any{}
	if info.City != "" {
		updates["city"] = info.City
	}
	if lat, lng, ok := parseLoc(info.Loc); ok {
		updates["latitude"] = lat
		updates["longitude"] = lng
	}
	if len(updates) == 0 {
		return nil
	}

	return w.db.Model(&user.User{}).Where("id = ?", t.UserID).Updates(updates).Error
}

// lookupIPInfo 请求 ipinfo.io 查询 IP 归属
func lookupIPInfo(ip string) (*ipInfo, error) {
	resp, err := ipinfoClient.Get(fmt.Sprintf("%s/%s/json", ipinfoBase, ip))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("地理位置服务返回 %d", resp.StatusCode)
	}

	var info ipInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

// isPublicIP 仅公网 IP 才有查询意义
func isPublicIP(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	return !(parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsUnspecified() || parsed.IsLinkLocalUnicast())
}

// parseLoc 解析 "纬度,经度" 格式
func parseLoc(loc string) (float64, float64, bool) {
	parts := strings.Split(loc, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lng, true
}
