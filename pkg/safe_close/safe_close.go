// Package safe_close 提供优雅关闭协调器
// 各后台组件通过 Attach 挂载，收到关闭信号后调用 done 通知退出完成
package safe_close

import (
	"sync"
)

type SafeClose struct {
	m sync.Mutex

	closed      bool
	closeSignal chan struct{}
	err         error

	wg sync.WaitGroup
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach 挂载一个后台执行单元
// f 会在新的 goroutine 中运行，收到 closeSignal 后应尽快退出并调用 done
func (sc *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	sc.m.Lock()
	if sc.closed {
		sc.m.Unlock()
		return
	}
	sc.wg.Add(1)
	sc.m.Unlock()

	var doneOnce sync.Once
	done := func() {
		doneOnce.Do(sc.wg.Done)
	}

	go f(done, sc.closeSignal)
}

// SendCloseSignal 发出关闭信号，重复调用只有第一次的 err 会被记录
func (sc *SafeClose) SendCloseSignal(err error) {
	sc.m.Lock()
	defer sc.m.Unlock()

	if sc.closed {
		return
	}
	sc.closed = true
	sc.err = err
	close(sc.closeSignal)
}

// ReceiveCloseSignal 返回关闭信号通道
func (sc *SafeClose) ReceiveCloseSignal() <-chan struct{} {
	return sc.closeSignal
}

// WaitClosed 阻塞直到关闭信号发出且所有挂载单元退出，返回关闭原因
func (sc *SafeClose) WaitClosed() error {
	<-sc.closeSignal
	sc.wg.Wait()

	sc.m.Lock()
	defer sc.m.Unlock()
	return sc.err
}
