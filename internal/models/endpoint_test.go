package models

import "testing"

func TestParseEndpoint(t *testing.T) {
	ep, err := ParseEndpoint("db:27017")
	if err != nil {
		t.Fatalf("合法端点解析失败: %v", err)
	}
	if ep.Host != "db" || ep.Port != 27017 {
		t.Errorf("解析结果错误: %+v", ep)
	}
	if ep.Addr() != "db:27017" {
		t.Errorf("Addr()应还原为host:port, 实际: %s", ep.Addr())
	}
}

func TestParseEndpointRejectsMalformed(t *testing.T) {
	cases := []string{
		"",            // 空串
		"db",          // 缺端口
		":8080",       // 缺主机
		"db:",         // 端口为空
		"db:abc",      // 端口非数字
		"db:0",        // 端口越界
		"db:70000",    // 端口越界
		"db:80:extra", // 多余段
	}
	for _, token := range cases {
		if _, err := ParseEndpoint(token); err == nil {
			t.Errorf("%q 应解析失败", token)
		}
	}
}
