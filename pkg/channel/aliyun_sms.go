package channel

import (
	"context"
	"encoding/json"
	"fmt"

	openapi "github.com/alibabacloud-go/darabonba-openapi/v2/client"
	openapiutil "github.com/alibabacloud-go/openapi-util/service"
	util "github.com/alibabacloud-go/tea-utils/v2/service"
	"github.com/alibabacloud-go/tea/tea"
	credential "github.com/aliyun/credentials-go/credentials"
	"go.uber.org/zap"

	"staffpulse/config"
	"staffpulse/pkg/errors"
	"staffpulse/pkg/logger"
)

// AliyunSMSClient is the SMS fallback channel for organizations whose
// employees have not opted into WhatsApp.
type AliyunSMSClient struct {
	client       *openapi.Client
	signName     string
	templateCode string
}

// NewAliyunSMSClient builds the client; credentials are resolved by the
// SDK from its own environment variables.
func NewAliyunSMSClient() (*AliyunSMSClient, error) {
	cfg := config.Cfg
	if cfg.SMSSignName == "" {
		return nil, errors.ErrSignNameRequired
	}
	if cfg.SMSTemplateCode == "" {
		return nil, errors.ErrTemplateCodeRequired
	}

	cred, err := credential.NewCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create aliyun credential: %w", err)
	}

	openapiConfig := &openapi.Config{
		Credential: cred,
		Endpoint:   tea.String("dysmsapi.aliyuncs.com"),
	}

	client, err := openapi.NewClient(openapiConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create aliyun client: %w", err)
	}

	return &AliyunSMSClient{
		client:       client,
		signName:     cfg.SMSSignName,
		templateCode: cfg.SMSTemplateCode,
	}, nil
}

func (c *AliyunSMSClient) createApiInfo(action string) *openapi.Params {
	return &openapi.Params{
		Action:      tea.String(action),
		Version:     tea.String("2017-05-25"),
		Protocol:    tea.String("HTTPS"),
		Method:      tea.String("POST"),
		AuthType:    tea.String("AK"),
		Style:       tea.String("RPC"),
		Pathname:    tea.String("/"),
		ReqBodyType: tea.String("json"),
		BodyType:    tea.String("json"),
	}
}

func (c *AliyunSMSClient) Send(ctx context.Context, phone, text string) (*Result, error) {
	templateParam, err := json.Marshal(map[string]string{"content": text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal template param: %w", err)
	}

	params := c.createApiInfo("SendSms")

	queries := map[string]interface{}{
		"PhoneNumbers":  tea.String(phone),
		"SignName":      tea.String(c.signName),
		"TemplateCode":  tea.String(c.templateCode),
		"TemplateParam": tea.String(string(templateParam)),
	}

	runtime := &util.RuntimeOptions{}
	request := &openapi.OpenApiRequest{
		Query: openapiutil.Query(queries),
	}

	resp, err := c.client.CallApi(params, request, runtime)
	if err != nil {
		logger.Logger.Error("Failed to send SMS",
			zap.String("phone", phone),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to send SMS: %w", err)
	}

	if resp["statusCode"] != nil {
		if statusCode, ok := resp["statusCode"].(int); ok && statusCode != 200 {
			logger.Logger.Error("SMS API returned error",
				zap.Int("statusCode", statusCode),
				zap.Any("body", resp["body"]),
			)
			return &Result{Accepted: false, Provider: "sms"}, nil
		}
	}

	result := &Result{Accepted: true, Provider: "sms"}

	if resp["body"] != nil {
		bodyBytes, _ := json.Marshal(resp["body"])
		var bodyMap map[string]interface{}
		if err := json.Unmarshal(bodyBytes, &bodyMap); err == nil {
			if bizID, ok := bodyMap["BizId"].(string); ok {
				result.ProviderRef = bizID
			}
			if code, ok := bodyMap["Code"].(string); ok && code != "OK" {
				message := ""
				if msg, ok := bodyMap["Message"].(string); ok {
					message = msg
				}
				logger.Logger.Error("SMS send rejected",
					zap.String("code", code),
					zap.String("message", message),
					zap.String("phone", phone),
				)
				result.Accepted = false
			}
		}
	}

	return result, nil
}
