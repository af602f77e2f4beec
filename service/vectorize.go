package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/BerniceZTT/leadgen_end/utils"

	"github.com/google/uuid"
)

// 文件向量化是长耗时操作，给出4分钟的上限后取消出站请求
const vectorizeTimeout = 4 * time.Minute

// ClientHeaderName 所有出站请求携带的固定客户端标识头
const (
	ClientHeaderName  = "X-Client-Info"
	ClientHeaderValue = "leadgen-backend"
)

// VectorizeClient 文件向量化webhook的出站客户端
type VectorizeClient struct {
	WebhookURL string
	HTTPClient *http.Client
}

// NewVectorizeClient 创建向量化客户端
func NewVectorizeClient(webhookURL string) *VectorizeClient {
	return &VectorizeClient{
		WebhookURL: webhookURL,
		HTTPClient: &http.Client{},
	}
}

// VectorizeResult webhook返回结果
type VectorizeResult struct {
	RequestID string `json:"requestId"`
	Success   bool   `json:"success"`
	Message   string `json:"message"`
}

// UploadFile 将上传文件以multipart转发到向量化webhook。
// 超时通过context取消出站请求实现。
func (vc *VectorizeClient) UploadFile(ctx context.Context, fileName string, file io.Reader) (*VectorizeResult, error) {
	if vc.WebhookURL == "" {
		return nil, utils.NewApiError("未配置向量化webhook地址", http.StatusServiceUnavailable, "WEBHOOK_NOT_CONFIGURED")
	}

	requestID := uuid.NewString()

	// 组装multipart请求体
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("创建multipart失败: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("读取上传文件失败: %w", err)
	}
	if err := writer.WriteField("requestId", requestID); err != nil {
		return nil, fmt.Errorf("写入requestId失败: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("关闭multipart失败: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, vectorizeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, vc.WebhookURL, body)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set(ClientHeaderName, ClientHeaderValue)

	start := time.Now()
	resp, err := vc.HTTPClient.Do(req)
	if err != nil {
		utils.LogWebhookCall(vc.WebhookURL, 0, time.Since(start), err)
		return nil, utils.NewAppError("向量化webhook调用失败", http.StatusBadGateway, err)
	}
	defer resp.Body.Close()

	utils.LogWebhookCall(vc.WebhookURL, resp.StatusCode, time.Since(start), nil)

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, utils.NewApiError(
			fmt.Sprintf("向量化webhook返回错误: %d %s", resp.StatusCode, string(respBody)),
			http.StatusBadGateway,
			"WEBHOOK_ERROR",
		)
	}

	return &VectorizeResult{
		RequestID: requestID,
		Success:   true,
		Message:   "文件已提交向量化",
	}, nil
}
