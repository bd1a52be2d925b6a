// Package auth 알림 API를 호출하는 애플리케이션의 인증을 담당합니다.
package auth

import (
	"crypto/subtle"
	"fmt"

	"github.com/darkkaiser/notify-dispatcher/internal/config"
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/constants"
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/httputil"
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/model/domain"
	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
	applog "github.com/darkkaiser/notify-dispatcher/pkg/log"
	"github.com/darkkaiser/notify-dispatcher/pkg/strutil"
)

// Authenticator 설정 파일에 등록된 애플리케이션을 App Key로 인증합니다.
//
// 애플리케이션 목록은 생성 시점에 고정되며 이후 변경되지 않으므로 동시에 호출해도 안전합니다.
type Authenticator struct {
	applications map[string]*domain.Application
}

// NewAuthenticator 설정의 애플리케이션 목록으로 Authenticator를 생성합니다.
func NewAuthenticator(appConfig *config.AppConfig) *Authenticator {
	applications := make(map[string]*domain.Application, len(appConfig.NotifyAPI.Applications))
	for _, application := range appConfig.NotifyAPI.Applications {
		applications[application.ID] = &domain.Application{
			ID:              application.ID,
			Title:           application.Title,
			Description:     application.Description,
			DefaultProvider: contract.ExternalProvider(application.DefaultProvider),
			AppKey:          application.AppKey,
		}
	}

	return &Authenticator{
		applications: applications,
	}
}

// Authenticate applicationID와 appKey가 일치하는 애플리케이션을 반환합니다.
// 미등록 애플리케이션이거나 키가 일치하지 않으면 401 에러를 반환합니다.
func (a *Authenticator) Authenticate(applicationID, appKey string) (*domain.Application, error) {
	app, ok := a.applications[applicationID]
	if !ok {
		return nil, httputil.NewUnauthorizedError(fmt.Sprintf("접근이 허용되지 않은 application_id(%s)입니다", applicationID))
	}

	if subtle.ConstantTimeCompare([]byte(app.AppKey), []byte(appKey)) != 1 {
		applog.WithComponentAndFields(constants.ComponentAuth, applog.Fields{
			"application_id":   applicationID,
			"received_app_key": strutil.MaskSensitiveData(appKey),
		}).Warn("APP_KEY 불일치")

		return nil, httputil.NewUnauthorizedError(fmt.Sprintf("app_key가 유효하지 않습니다.(application_id:%s)", applicationID))
	}

	return app, nil
}
