// Package docs 알림 API의 Swagger 문서를 등록합니다.
//
// /swagger/doc.json은 이 패키지가 swag 레지스트리에 등록한 문서를 그대로 제공합니다.
// 핸들러의 godoc 주석을 변경하면 이 문서도 함께 갱신해야 합니다.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/messages": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "렌더링과 수신자 조회 없이 지정한 채널로 텍스트를 그대로 보냅니다.\n전송 실패는 서버 로그로만 남고, 응답은 항상 200과 전송 상태입니다.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Notification"],
                "summary": "채널 메시지 전송",
                "parameters": [
                    {"type": "string", "description": "애플리케이션 ID (본문의 application_id 대신 사용)", "name": "X-Application-Id", "in": "header"},
                    {"description": "메시지 요청", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/request.MessageRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/v1/notifications": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "알림 하나를 수신자들에게 전달합니다. 수신자별 채널은 서버에 설정된 라우팅 테이블로 조회합니다.\n개별 전송 실패는 에러가 아니라 응답의 failed/render_failed 건수로 보고됩니다.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Notification"],
                "summary": "알림 디스패치",
                "parameters": [
                    {"type": "string", "description": "애플리케이션 ID (본문의 application_id 대신 사용)", "name": "X-Application-Id", "in": "header"},
                    {"description": "알림 요청", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/request.NotificationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.NotificationResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "502": {"description": "채널 조회 실패", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "서버와 알림 서비스의 상태를 반환합니다.",
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "서버 헬스체크",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/system.HealthResponse"}}
                }
            }
        },
        "/version": {
            "get": {
                "description": "빌드 시점에 주입된 버전, 커밋, 빌드 번호를 반환합니다.",
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "서버 버전 정보",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/system.VersionResponse"}}
                }
            }
        }
    },
    "definitions": {
        "request.MessageRequest": {
            "type": "object",
            "properties": {
                "application_id": {"type": "string", "example": "billing"},
                "provider": {"type": "string", "example": "telegram"},
                "integration_id": {"type": "string", "example": "ops-telegram"},
                "channel_id": {"type": "string", "example": "-1001234567890"},
                "text": {"type": "string", "example": "배포가 완료되었습니다"}
            }
        },
        "request.NotificationPayload": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "type": {"type": "string", "example": "alert-rule"},
                "organization_id": {"type": "string", "example": "acme"},
                "metrics_key": {"type": "string", "example": "alert_rule"},
                "title": {"type": "string", "example": "Error rate above 5%"},
                "message": {"type": "string", "example": "<p>payment-api</p>"},
                "url": {"type": "string"},
                "level": {"type": "string", "example": "error"},
                "data": {"type": "object"}
            }
        },
        "request.NotificationRequest": {
            "type": "object",
            "properties": {
                "application_id": {"type": "string", "example": "billing"},
                "provider": {"type": "string", "example": "slack"},
                "notification": {"$ref": "#/definitions/request.NotificationPayload"},
                "recipients": {"type": "array", "items": {"type": "string"}, "example": ["user:42", "team:7"]},
                "shared": {"type": "object"},
                "extra_by_actor": {"type": "object"}
            }
        },
        "response.ErrorResponse": {
            "type": "object",
            "properties": {
                "result_code": {"type": "integer", "example": 400},
                "message": {"type": "string", "example": "app_key가 유효하지 않습니다.(application_id:my-app)"}
            }
        },
        "response.MessageResponse": {
            "type": "object",
            "properties": {
                "result_code": {"type": "integer", "example": 0},
                "status": {"type": "string", "example": "delivered"}
            }
        },
        "response.NotificationResponse": {
            "type": "object",
            "properties": {
                "result_code": {"type": "integer", "example": 0},
                "notification_id": {"type": "string", "example": "3f2b8c4e-0f0a-4a4e-9a57-0d3c4a7e9b11"},
                "provider": {"type": "string", "example": "slack"},
                "recipients": {"type": "integer", "example": 2},
                "delivered": {"type": "integer", "example": 3},
                "suppressed": {"type": "integer", "example": 0},
                "failed": {"type": "integer", "example": 0},
                "render_failed": {"type": "integer", "example": 0}
            }
        },
        "system.DependencyStatus": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "healthy"},
                "message": {"type": "string", "example": "정상 작동 중"}
            }
        },
        "system.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "healthy"},
                "uptime": {"type": "integer", "example": 3600},
                "dependencies": {"type": "object", "additionalProperties": {"$ref": "#/definitions/system.DependencyStatus"}}
            }
        },
        "system.VersionResponse": {
            "type": "object",
            "properties": {
                "version": {"type": "string", "example": "v1.0.0"},
                "commit": {"type": "string", "example": "f25b8bf"},
                "build_date": {"type": "string", "example": "2025-12-01T14:00:00Z"},
                "build_number": {"type": "string", "example": "100"},
                "go_version": {"type": "string", "example": "go1.24.0"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "X-App-Key",
            "in": "header"
        }
    }
}`

// SwaggerInfo 런타임에 변경할 수 있는 문서 메타데이터입니다.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Notify Dispatcher API",
	Description:      "애플리케이션 알림을 Slack, Telegram 채널로 전달하는 디스패치 서버 API입니다.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
