package topology

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed topology.schema.json
var rawSchema string

var docSchema = jsonschema.MustCompileString("topology.schema.json", rawSchema)

/**
 * Service node of the external startup topology
 * @property {[]string} depends_on - Services that must be launched before this one
 * @property {map[string]string} environment - Environment values handed to the service process
 * @property {string} entrypoint - Optional entrypoint wrapper (typically the waitfor gate)
 */
type ServiceNode struct {
	DependsOn   []string          `yaml:"depends_on"`
	Environment map[string]string `yaml:"environment"`
	Entrypoint  string            `yaml:"entrypoint"`
}

// Document 编排拓扑文档，consumed not owned：本核心只关心启动顺序与环境约定
type Document struct {
	Version  string                 `yaml:"version"`
	Services map[string]ServiceNode `yaml:"services"`
}

/**
 * Load reads, schema-validates and decodes a topology document
 * @param {string} path - Topology YAML file
 * @returns {*Document} Decoded document
 * @returns {error} Read, schema or decode failure
 */
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read topology file failed: %w", err)
	}

	// 先按通用结构做schema校验，再解码为强类型
	var generic interface{}
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("parse topology file failed: %w", err)
	}
	if err := docSchema.Validate(generic); err != nil {
		return nil, fmt.Errorf("topology schema violation: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode topology file failed: %w", err)
	}
	return &doc, nil
}

/**
 * Validate checks that startup edges reference known services and form a DAG
 * @returns {error} Configuration error describing the violation, nil when valid
 */
func (d *Document) Validate() error {
	for name, svc := range d.Services {
		for _, dep := range svc.DependsOn {
			if _, ok := d.Services[dep]; !ok {
				return fmt.Errorf("service %q depends on unknown service %q", name, dep)
			}
		}
	}

	visited := make(map[string]bool)
	recStack := make(map[string]bool)
	for name := range d.Services {
		if !visited[name] {
			if d.hasCycleDFS(name, visited, recStack) {
				return fmt.Errorf("cycle detected in service dependencies")
			}
		}
	}
	return nil
}

// hasCycleDFS 深度优先检测环
func (d *Document) hasCycleDFS(node string, visited, recStack map[string]bool) bool {
	visited[node] = true
	recStack[node] = true

	for _, dep := range d.Services[node].DependsOn {
		if !visited[dep] {
			if d.hasCycleDFS(dep, visited, recStack) {
				return true
			}
		} else if recStack[dep] {
			return true
		}
	}

	recStack[node] = false
	return false
}

/**
 * LaunchOrder returns service names in a valid startup order (Kahn's algorithm)
 * @returns {[]string} Services ordered so every dependency precedes its dependents
 * @returns {error} Returns error when the dependency graph has a cycle
 */
func (d *Document) LaunchOrder() ([]string, error) {
	inDegree := make(map[string]int, len(d.Services))
	dependents := make(map[string][]string, len(d.Services))

	for name := range d.Services {
		inDegree[name] = 0
		dependents[name] = []string{}
	}
	for name, svc := range d.Services {
		for _, dep := range svc.DependsOn {
			if _, ok := d.Services[dep]; !ok {
				return nil, fmt.Errorf("service %q depends on unknown service %q", name, dep)
			}
			inDegree[name]++
			dependents[dep] = append(dependents[dep], name)
		}
	}

	queue := make([]string, 0)
	for name, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue)

	ordered := make([]string, 0, len(d.Services))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		ordered = append(ordered, current)

		for _, dep := range dependents[current] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
		sort.Strings(queue)
	}

	if len(ordered) != len(d.Services) {
		return nil, fmt.Errorf("cycle detected in service dependencies")
	}
	return ordered, nil
}
