// Package service 애플리케이션을 구성하는 서비스들의 공통 생명주기 인터페이스를 정의합니다.
package service

import (
	"context"
	"sync"
)

// Service 시작과 종료 절차를 갖는 서비스입니다.
//
// Start를 호출하기 전에 호출자가 serviceStopWG.Add(1)을 수행하며, 서비스는 serviceStopCtx가 취소되어
// 모든 정리 작업을 마쳤을 때 또는 Start가 에러를 반환할 때 serviceStopWG.Done()을 한 번 호출해야 합니다.
type Service interface {
	Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error
}
