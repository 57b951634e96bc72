/*
Package config reads the YAML configuration document and produces the
Task and Node descriptors the rest of the framework consumes: the
static node set, the health supervisor's system-service list, and the
named api.service-groups[] the admin surface can start.

# Document Shape

	name: my-cluster                 # defaults to "torc-controller"
	nodes:
	  - name: node-1
	    ip: 10.0.0.1
	    type: slave
	healthcheck:
	  poll_interval_in_seconds: 30
	  system_services:
	    - name: dns-sl1
	      image_name: example/dns:latest
	      sla: singleton_each_node
	statesync:
	  poll_interval_in_seconds: 60
	api:
	  service-groups:
	    - name: web
	      services:
	        - name: web-frontend
	          image_name: example/web:latest
	          number_of_instances: 3

document, healthcheckSpec, statesyncSpec, serviceGroupSpec, and
apiSpec are the unexported yaml.v3 struct-tag mirrors of this
top-level shape; TaskSpec and NodeSpec are the on-disk shapes of the
task and node descriptors nested inside it. Config wraps the parsed
document and exposes only the derived accessors below — callers never
see document or TaskSpec/NodeSpec directly.

# Expansion and Defaulting

number_of_instances expansion and memory/cpu defaulting happen here, in
a single pass over the parsed document (toTask / expandInstances /
expandAll), rather than field-by-field as the document is unmarshalled:

  - A TaskSpec with number_of_instances > 1 expands into that many
    types.Task clones, names suffixed "-0", "-1", … — expandInstances.
  - memory/cpu fields are *float64 so the zero value is
    distinguishable from "unset"; an unset field falls back to
    DefaultMemory (128.0) or DefaultCPU (0.1) — toTask.
  - the sla string is classified via types.ParseSLA at this point, so
    every types.Task leaving this package already carries its typed
    SLA. network_type is kept as its raw string; pkg/scheduler
    classifies it with types.ParseNetworkMode at launch time.

SLA-based placement expansion (one declared system service turning
into N node-pinned tasks) is not done here — see pkg/health, which
performs that expansion at supervisor-construction time against the
node set it is given (cmd/torc-controller passes Nodes(), whose
NodeType comes from each node's declared type).

# Usage

	cfg, err := config.Load("/etc/torc-controller/config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	nodes := cfg.Nodes()
	systemServices := cfg.SystemServiceTasks()
	webTasks, ok := cfg.ServiceGroup("web")

# Error Handling

Load reports a malformed document (missing file, invalid YAML) as a
wrapped error rather than panicking or exiting; per the framework's
error-handling policy a startup-time configuration failure is fatal,
but the decision to log and os.Exit belongs to cmd/torc-controller, not
to this package.

# See Also

  - pkg/types - the Task/Node shapes this package produces
  - pkg/health - SLA-expands SystemServiceTasks() against a node set
  - pkg/api - starts the service groups this package exposes by name
*/
package config
