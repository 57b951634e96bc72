package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/att-innovate/torc-controller/pkg/types"
)

// Defaults applied whenever a task descriptor omits the field.
const (
	DefaultMemory = 128.0
	DefaultCPU    = 0.1

	DefaultFrameworkName = "torc-controller"
)

// VolumeSpec is the on-disk shape of a task's volume declaration.
type VolumeSpec struct {
	HostPath      string `yaml:"host_path"`
	ContainerPath string `yaml:"container_path"`
	ReadOnlyMode  bool   `yaml:"read_only_mode"`
}

// TaskSpec is the on-disk shape of a task descriptor, shared by
// healthcheck.system_services and api.service-groups[].services.
type TaskSpec struct {
	Name               string       `yaml:"name"`
	ImageName          string       `yaml:"image_name"`
	NodeName           string       `yaml:"node_name"`
	NodeType           string       `yaml:"node_type"`
	NodeFunction       string       `yaml:"node_function"`
	NumberOfInstances  int          `yaml:"number_of_instances"`
	DependentService   string       `yaml:"dependent_service"`
	Arguments          string       `yaml:"arguments"`
	Parameters         string       `yaml:"parameters"`
	Memory             *float64     `yaml:"memory"`
	CPU                *float64     `yaml:"cpu"`
	Volumes            []VolumeSpec `yaml:"volumes"`
	Privileged         bool         `yaml:"privileged"`
	SLA                string       `yaml:"sla"`
	IsMetered          bool         `yaml:"is_metered"`
	IsJob              bool         `yaml:"is_job"`
	NetworkType        string       `yaml:"network_type"`
}

// NodeSpec is the on-disk shape of a statically declared node.
type NodeSpec struct {
	Name         string `yaml:"name"`
	IP           string `yaml:"ip"`
	ExternalIP   string `yaml:"external_ip"`
	ManagementIP string `yaml:"management_ip"`
	Port         string `yaml:"port"`
	Type         string `yaml:"type"`
}

type healthcheckSpec struct {
	PollIntervalInSeconds int        `yaml:"poll_interval_in_seconds"`
	SystemServices        []TaskSpec `yaml:"system_services"`
}

type statesyncSpec struct {
	PollIntervalInSeconds int `yaml:"poll_interval_in_seconds"`
}

type serviceGroupSpec struct {
	Name     string     `yaml:"name"`
	Services []TaskSpec `yaml:"services"`
}

type apiSpec struct {
	ServiceGroups []serviceGroupSpec `yaml:"service-groups"`
}

type document struct {
	Name        string          `yaml:"name"`
	Nodes       []NodeSpec      `yaml:"nodes"`
	Healthcheck healthcheckSpec `yaml:"healthcheck"`
	Statesync   statesyncSpec   `yaml:"statesync"`
	API         apiSpec         `yaml:"api"`
}

// Config is the parsed, defaulted configuration document.
type Config struct {
	doc document
}

// Load reads and parses the configuration document at path. A malformed
// document is a startup-fatal condition per the error-handling policy;
// the caller is expected to log and exit.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if doc.Name == "" {
		doc.Name = DefaultFrameworkName
	}

	return &Config{doc: doc}, nil
}

// FrameworkName returns the configured framework name, defaulted to
// "torc-controller".
func (c *Config) FrameworkName() string {
	return c.doc.Name
}

// Nodes returns the statically declared node set, seeded inactive — the
// scheduler activates a node the first time an offer carries its
// attributes.
func (c *Config) Nodes() []types.Node {
	nodes := make([]types.Node, 0, len(c.doc.Nodes))
	for _, n := range c.doc.Nodes {
		nodes = append(nodes, types.Node{
			Name:         n.Name,
			IP:           n.IP,
			ExternalIP:   n.ExternalIP,
			ManagementIP: n.ManagementIP,
			PortID:       n.Port,
			NodeType:     n.Type,
			Active:       false,
		})
	}
	return nodes
}

// HealthPollIntervalSeconds returns healthcheck.poll_interval_in_seconds.
func (c *Config) HealthPollIntervalSeconds() int {
	return c.doc.Healthcheck.PollIntervalInSeconds
}

// StatesyncPollIntervalSeconds returns statesync.poll_interval_in_seconds.
func (c *Config) StatesyncPollIntervalSeconds() int {
	return c.doc.Statesync.PollIntervalInSeconds
}

// SystemServiceTasks expands healthcheck.system_services into task
// descriptors (instance-expanded, unplaced by SLA — the health
// supervisor performs the SLA expansion against the node set it is
// given).
func (c *Config) SystemServiceTasks() []types.Task {
	return expandAll(c.doc.Healthcheck.SystemServices, true)
}

// ServiceGroup returns the instance-expanded tasks of a named
// api.service-groups[] entry, and whether that group exists.
func (c *Config) ServiceGroup(name string) ([]types.Task, bool) {
	for _, g := range c.doc.API.ServiceGroups {
		if g.Name == name {
			return expandAll(g.Services, false), true
		}
	}
	return nil, false
}

func expandAll(specs []TaskSpec, systemService bool) []types.Task {
	var out []types.Task
	for _, spec := range specs {
		out = append(out, expandInstances(spec, systemService)...)
	}
	return out
}

// expandInstances applies the number_of_instances expansion: names are
// suffixed "-0", "-1", ... when more than one instance is declared.
func expandInstances(spec TaskSpec, systemService bool) []types.Task {
	n := spec.NumberOfInstances
	if n <= 0 {
		n = 1
	}

	base := toTask(spec, systemService)

	if n == 1 {
		return []types.Task{base}
	}

	tasks := make([]types.Task, 0, n)
	for i := 0; i < n; i++ {
		t := base.Clone()
		t.Name = fmt.Sprintf("%s-%d", base.Name, i)
		tasks = append(tasks, t)
	}
	return tasks
}

func toTask(spec TaskSpec, systemService bool) types.Task {
	memory := DefaultMemory
	if spec.Memory != nil {
		memory = *spec.Memory
	}
	cpu := DefaultCPU
	if spec.CPU != nil {
		cpu = *spec.CPU
	}

	volumes := make([]types.Volume, 0, len(spec.Volumes))
	for _, v := range spec.Volumes {
		volumes = append(volumes, types.Volume{
			HostPath:      v.HostPath,
			ContainerPath: v.ContainerPath,
			ReadOnly:      v.ReadOnlyMode,
		})
	}

	return types.Task{
		Name:             spec.Name,
		Image:            spec.ImageName,
		NodeName:         spec.NodeName,
		NodeType:         spec.NodeType,
		NodeFunction:     spec.NodeFunction,
		DependentService: spec.DependentService,
		Arguments:        spec.Arguments,
		Parameters:       spec.Parameters,
		Memory:           memory,
		CPU:              cpu,
		Volumes:          volumes,
		Privileged:       spec.Privileged,
		IsMetered:        spec.IsMetered,
		IsSystemService:  systemService,
		IsJob:            spec.IsJob,
		SLA:              types.ParseSLA(spec.SLA),
		NetworkType:      spec.NetworkType,
		State:            types.NotRunning,
	}
}
