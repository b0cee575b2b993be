package gate

import (
	"bytes"
	"context"
	"errors"
	"net"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"testing"
	"time"

	"waitfor/internal/logger"
	"waitfor/internal/models"
	"waitfor/internal/probe"
	"waitfor/internal/retrier"
)

func init() {
	logger.InitLogger("console", "error", false)
}

func freeEndpoint(t *testing.T) models.Endpoint {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("申请空闲端口失败: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()
	return models.Endpoint{Host: "127.0.0.1", Port: port}
}

/**
 * TestHelperProcess 子进程入口，不是常规测试
 * @description
 * - 由下面的测试以子进程方式调用，参数形如: HOST:PORT TIMEOUT [COMMAND...]
 * - 按main.go的退出码约定退出，便于父进程断言
 */
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GATE_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	idx := -1
	for i, a := range args {
		if a == "--" {
			idx = i
			break
		}
	}
	if idx < 0 || len(args) < idx+3 {
		os.Exit(ExitUsage)
	}
	args = args[idx+1:]

	ep, err := models.ParseEndpoint(args[0])
	if err != nil {
		os.Exit(ExitUsage)
	}
	timeout, err := strconv.Atoi(args[1])
	if err != nil {
		os.Exit(ExitUsage)
	}

	cfg := &models.WaitConfig{
		Endpoint:       ep,
		TimeoutSeconds: timeout,
		Quiet:          true,
		Command:        args[2:],
	}
	os.Exit(ExitCode(New(cfg).Run(context.Background())))
}

// helperCommand 以子进程方式运行TestHelperProcess
func helperCommand(t *testing.T, args ...string) *exec.Cmd {
	t.Helper()
	cmdArgs := append([]string{"-test.run=TestHelperProcess", "--"}, args...)
	cmd := exec.Command(os.Args[0], cmdArgs...)
	cmd.Env = append(os.Environ(), "GATE_HELPER_PROCESS=1")
	return cmd
}

func TestRunReadyWithoutCommand(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("启动监听器失败: %v", err)
	}
	defer ln.Close()
	ep := models.Endpoint{Host: "127.0.0.1", Port: ln.Addr().(*net.TCPAddr).Port}

	g := New(&models.WaitConfig{Endpoint: ep, TimeoutSeconds: 5})
	if err := g.Run(context.Background()); err != nil {
		t.Fatalf("端点就绪且无尾随命令时应返回nil: %v", err)
	}
}

/**
 * TestRunTimeoutNotice 验证超时提示与quiet约定
 * @description
 * - 非quiet时在错误流输出一行超时提示
 * - quiet时完全静默
 */
func TestRunTimeoutNotice(t *testing.T) {
	ep := freeEndpoint(t)

	var buf bytes.Buffer
	g := New(&models.WaitConfig{Endpoint: ep, TimeoutSeconds: 1})
	g.SetErrStream(&buf)

	if err := g.Run(context.Background()); !errors.Is(err, probe.ErrTimedOut) {
		t.Fatalf("期望超时错误，实际: %v", err)
	}
	if !strings.Contains(buf.String(), "timeout occurred") {
		t.Errorf("缺少超时提示，实际输出: %q", buf.String())
	}

	buf.Reset()
	g = New(&models.WaitConfig{Endpoint: ep, TimeoutSeconds: 1, Quiet: true})
	g.SetErrStream(&buf)
	if err := g.Run(context.Background()); !errors.Is(err, probe.ErrTimedOut) {
		t.Fatalf("期望超时错误，实际: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("quiet模式不应有任何输出，实际: %q", buf.String())
	}
}

func TestExitCodeMapping(t *testing.T) {
	if got := ExitCode(nil); got != ExitReady {
		t.Errorf("nil应映射为0，实际: %d", got)
	}
	if got := ExitCode(NewUsageError(errors.New("bad"))); got != ExitUsage {
		t.Errorf("用法错误应映射为2，实际: %d", got)
	}
	if got := ExitCode(probe.ErrTimedOut); got != ExitTimeout {
		t.Errorf("超时应映射为1，实际: %d", got)
	}
}

/**
 * TestHandoffInheritsExitCode 验证进程交接后的退出码语义
 * @description
 * - 尾随命令以7退出，父进程观察到的退出码应为7
 * - unix下进程映像被替换，不残留包装进程
 */
func TestHandoffInheritsExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("handoff test relies on sh")
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("启动监听器失败: %v", err)
	}
	defer ln.Close()
	addr := ln.Addr().String()

	cmd := helperCommand(t, addr, "5", "sh", "-c", "exit 7")
	err = cmd.Run()

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("期望非零退出, 实际: %v", err)
	}
	if code := exitErr.ExitCode(); code != 7 {
		t.Errorf("退出码应继承自尾随命令, 期望7实际%d", code)
	}
}

func TestTimeoutExitCodeFromProcess(t *testing.T) {
	ep := freeEndpoint(t)

	start := time.Now()
	cmd := helperCommand(t, ep.Addr(), "5")
	err := cmd.Run()
	elapsed := time.Since(start)

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("期望非零退出, 实际: %v", err)
	}
	if code := exitErr.ExitCode(); code != ExitTimeout {
		t.Errorf("超时退出码应为1, 实际%d", code)
	}
	if elapsed < 4500*time.Millisecond || elapsed > 7*time.Second {
		t.Errorf("timeout=5时应在5~6秒左右退出, 实际%v", elapsed)
	}
}

// tcpDialer 端到端测试用的最小会话拨号器
type tcpDialer struct {
	addr string
}

type tcpSession struct {
	conn net.Conn
}

func (s *tcpSession) Disconnect(_ context.Context) error { return s.conn.Close() }

func (d *tcpDialer) Target() string { return d.addr }

func (d *tcpDialer) Dial(ctx context.Context) (retrier.Session, error) {
	var nd net.Dialer
	conn, err := nd.DialContext(ctx, "tcp", d.addr)
	if err != nil {
		return nil, err
	}
	return &tcpSession{conn: conn}, nil
}

/**
 * TestEndToEndGateThenConnect 端到端：依赖约3秒后开放端口
 * @description
 * - 启动门timeout=10，应在[3s, 4s)左右放行
 * - 放行后重试器应很快达到Connected
 */
func TestEndToEndGateThenConnect(t *testing.T) {
	ep := freeEndpoint(t)

	lnCh := make(chan net.Listener, 1)
	go func() {
		time.Sleep(3 * time.Second)
		ln, err := net.Listen("tcp", ep.Addr())
		if err != nil {
			t.Errorf("延迟打开监听器失败: %v", err)
			lnCh <- nil
			return
		}
		lnCh <- ln
	}()

	start := time.Now()
	cmd := helperCommand(t, ep.Addr(), "10")
	if err := cmd.Run(); err != nil {
		t.Fatalf("依赖已就绪但网关失败: %v", err)
	}
	unblocked := time.Since(start)
	if unblocked < 2500*time.Millisecond || unblocked > 4900*time.Millisecond {
		t.Errorf("放行时机应在3~4秒左右, 实际%v", unblocked)
	}

	ln := <-lnCh
	if ln == nil {
		t.Fatal("依赖端口未打开")
	}
	defer ln.Close()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	r := retrier.New(&tcpDialer{addr: ep.Addr()}, models.RetryPolicy{
		Interval:       200 * time.Millisecond,
		ConnectTimeout: time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	sess, err := r.Connect(ctx)
	if err != nil {
		t.Fatalf("放行后重试器应能建立连接: %v", err)
	}
	sess.Disconnect(context.Background())
}
