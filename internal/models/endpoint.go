package models

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

/**
 * Network endpoint of the prerequisite service
 * @property {string} host - Target host, never empty
 * @property {int} port - Target TCP port, always in 1-65535
 */
type Endpoint struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

/**
 * Parse a single "host:port" token into an Endpoint
 * @param {string} token - Token in host:port form
 * @returns {Endpoint} Parsed endpoint
 * @returns {error} Returns error if the token is malformed, host is empty or port is out of range
 */
func ParseEndpoint(token string) (Endpoint, error) {
	host, portStr, err := net.SplitHostPort(strings.TrimSpace(token))
	if err != nil {
		return Endpoint{}, fmt.Errorf("invalid endpoint %q: expected host:port", token)
	}
	if host == "" {
		return Endpoint{}, fmt.Errorf("invalid endpoint %q: host is required", token)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return Endpoint{}, fmt.Errorf("invalid endpoint %q: port must be a number", token)
	}
	if port < 1 || port > 65535 {
		return Endpoint{}, fmt.Errorf("invalid endpoint %q: port must be in 1-65535", token)
	}
	return Endpoint{Host: host, Port: port}, nil
}

// Addr 返回可直接用于net.Dial的地址
func (e Endpoint) Addr() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

func (e Endpoint) String() string {
	return e.Addr()
}
