package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Lucop1911/vlsm/internal/assert"
)

const allocateTable = "" +
	"SUBNET       NETWORK       NETMASK          FIRST HOST  LAST HOST   HOSTS  REQUESTED\n" +
	"engineering  10.0.0.0/26   255.255.255.192  10.0.0.1    10.0.0.62   62     50\n" +
	"sales        10.0.0.64/27  255.255.255.224  10.0.0.65   10.0.0.94   30     20\n" +
	"guests       10.0.0.96/28  255.255.255.240  10.0.0.97   10.0.0.110  14     10\n" +
	"\n" +
	"160 of 256 addresses allocated (62.5%)\n"

func writePlan(t *testing.T, plan string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	if err := os.WriteFile(path, []byte(plan), 0666); err != nil {
		t.Fatal("writing subnet plan:", err)
	}
	return path
}

var allocateTests = tests{
	"show the allocate command help with the short option": func(t *testing.T) {
		stdout, stderr, exitCode := run(t, "allocate", "-h")
		assert.Equal(t, exitCode, 0)
		assert.HasPrefix(t, stdout, "Usage:\tvlsm allocate ")
		assert.Equal(t, stderr, "")
	},

	"show the allocate command help with the long option": func(t *testing.T) {
		stdout, stderr, exitCode := run(t, "allocate", "--help")
		assert.Equal(t, exitCode, 0)
		assert.HasPrefix(t, stdout, "Usage:\tvlsm allocate ")
		assert.Equal(t, stderr, "")
	},

	"allocate subnets given as command line arguments": func(t *testing.T) {
		stdout, stderr, exitCode := run(t, "allocate", "-b", "10.0.0.0/24", "engineering=50", "sales=20", "guests=10")
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, allocateTable)
		assert.Equal(t, stderr, "")
	},

	"requirements are placed from the largest to the smallest": func(t *testing.T) {
		stdout, stderr, exitCode := run(t, "allocate", "-b", "10.0.0.0/24", "guests=10", "sales=20", "engineering=50")
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, allocateTable)
		assert.Equal(t, stderr, "")
	},

	"the quiet option only lists the subnet networks": func(t *testing.T) {
		stdout, stderr, exitCode := run(t, "allocate", "-b", "10.0.0.0/24", "-q", "engineering=50", "sales=20", "guests=10")
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, "10.0.0.0/26\n10.0.0.64/27\n10.0.0.96/28\n")
		assert.Equal(t, stderr, "")
	},

	"host counts accept unit suffixes": func(t *testing.T) {
		stdout, stderr, exitCode := run(t, "allocate", "-b", "10.0.0.0/16", "-q", "office=1.5K")
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, "10.0.0.0/21\n")
		assert.Equal(t, stderr, "")
	},

	"report the free blocks left over by the allocation": func(t *testing.T) {
		stdout, stderr, exitCode := run(t, "allocate", "-b", "10.0.0.0/24", "--free", "engineering=50", "sales=20", "guests=10")
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, allocateTable+
			"\n"+
			"FREE BLOCK     SIZE\n"+
			"10.0.0.112/28  16\n"+
			"10.0.0.128/25  128\n")
		assert.Equal(t, stderr, "")
	},

	"free blocks are listed as networks in quiet mode": func(t *testing.T) {
		stdout, stderr, exitCode := run(t, "allocate", "-b", "10.0.0.0/24", "-q", "--free", "engineering=50", "sales=20", "guests=10")
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, "10.0.0.0/26\n10.0.0.64/27\n10.0.0.96/28\n10.0.0.112/28\n10.0.0.128/25\n")
		assert.Equal(t, stderr, "")
	},

	"allocate subnets declared in a plan file": func(t *testing.T) {
		path := writePlan(t, `base: 10.0.0.0/24
subnets:
- name: engineering
  hosts: 50
- name: sales
  hosts: 20
- name: guests
  hosts: 10
`)
		stdout, stderr, exitCode := run(t, "allocate", "-f", path)
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, allocateTable)
		assert.Equal(t, stderr, "")
	},

	"the base option takes precedence over the plan file base": func(t *testing.T) {
		path := writePlan(t, `base: 192.168.0.0/24
subnets:
- name: engineering
  hosts: 50
`)
		stdout, stderr, exitCode := run(t, "allocate", "-f", path, "-b", "10.0.0.0/24", "-q")
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, "10.0.0.0/26\n")
		assert.Equal(t, stderr, "")
	},

	"json output": func(t *testing.T) {
		stdout, stderr, exitCode := run(t, "allocate", "-b", "10.0.0.0/24", "-o", "json", "engineering=50")
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, `{
  "subnet": "engineering",
  "network": "10.0.0.0/26",
  "netmask": "255.255.255.192",
  "first_host": "10.0.0.1",
  "last_host": "10.0.0.62",
  "hosts": 62,
  "requested": 50
}
`)
		assert.Equal(t, stderr, "")
	},

	"yaml output": func(t *testing.T) {
		stdout, stderr, exitCode := run(t, "allocate", "-b", "10.0.0.0/24", "-o", "yaml", "engineering=50", "sales=20")
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, `subnet: engineering
network: 10.0.0.0/26
netmask: 255.255.255.192
first_host: 10.0.0.1
last_host: 10.0.0.62
hosts: 62
requested: 50
---
subnet: sales
network: 10.0.0.64/27
netmask: 255.255.255.224
first_host: 10.0.0.65
last_host: 10.0.0.94
hosts: 30
requested: 20
`)
		assert.Equal(t, stderr, "")
	},

	"no placement is written when a requirement does not fit": func(t *testing.T) {
		stdout, stderr, exitCode := run(t, "allocate", "-b", "198.51.100.0/30", "office=10")
		assert.Equal(t, exitCode, 1)
		assert.Equal(t, stdout, "")
		assert.Equal(t, stderr, "ERR: vlsm allocate: placing subnet \"office\": 16 addresses needed, 4 available: base network exhausted\n")
	},

	"subnets cannot be requested for zero hosts": func(t *testing.T) {
		stdout, stderr, exitCode := run(t, "allocate", "-b", "10.0.0.0/24", "office=0")
		assert.Equal(t, exitCode, 1)
		assert.Equal(t, stdout, "")
		assert.Equal(t, stderr, "ERR: vlsm allocate: sizing subnet \"office\": a subnet must be requested for at least one host\n")
	},

	"subnets cannot be requested for a negative host count": func(t *testing.T) {
		stdout, stderr, exitCode := run(t, "allocate", "-b", "10.0.0.0/24", "office=-5")
		assert.Equal(t, exitCode, 2)
		assert.Equal(t, stdout, "")
		assert.Equal(t, stderr, "subnet \"office\" requests a negative host count\n")
	},

	"reject malformed subnet requirements": func(t *testing.T) {
		stdout, stderr, exitCode := run(t, "allocate", "-b", "10.0.0.0/24", "engineering")
		assert.Equal(t, exitCode, 2)
		assert.Equal(t, stdout, "")
		assert.Equal(t, stderr, "malformed subnet requirement: \"engineering\": expected <name=hosts>\n")
	},

	"reject host counts that do not parse": func(t *testing.T) {
		stdout, stderr, exitCode := run(t, "allocate", "-b", "10.0.0.0/24", "office=abc")
		assert.Equal(t, exitCode, 2)
		assert.Equal(t, stdout, "")
		assert.HasPrefix(t, stderr, "malformed subnet requirement: \"office=abc\": ")
	},

	"requirements as arguments conflict with a plan file": func(t *testing.T) {
		path := writePlan(t, "subnets:\n- name: office\n  hosts: 10\n")
		stdout, stderr, exitCode := run(t, "allocate", "-f", path, "-b", "10.0.0.0/24", "office=10")
		assert.Equal(t, exitCode, 2)
		assert.Equal(t, stdout, "")
		assert.HasPrefix(t, stderr, "Subnet requirements cannot be passed as arguments")
	},

	"expect requirements when no plan file is given": func(t *testing.T) {
		stdout, stderr, exitCode := run(t, "allocate", "-b", "10.0.0.0/24")
		assert.Equal(t, exitCode, 2)
		assert.Equal(t, stdout, "")
		assert.HasPrefix(t, stderr, "Expected subnet requirements as arguments")
	},

	"expect a base network": func(t *testing.T) {
		stdout, stderr, exitCode := run(t, "allocate", "engineering=50")
		assert.Equal(t, exitCode, 2)
		assert.Equal(t, stdout, "")
		assert.HasPrefix(t, stderr, "No base network was given")
	},

	"a plan file without a base still needs the base option": func(t *testing.T) {
		path := writePlan(t, "subnets:\n- name: office\n  hosts: 10\n")
		stdout, stderr, exitCode := run(t, "allocate", "-f", path)
		assert.Equal(t, exitCode, 2)
		assert.Equal(t, stdout, "")
		assert.HasPrefix(t, stderr, "No base network was given")
	},

	"report plan files that do not parse": func(t *testing.T) {
		path := writePlan(t, "subnets: {broken\n")
		_, stderr, exitCode := run(t, "allocate", "-f", path)
		assert.Equal(t, exitCode, 1)
		assert.HasPrefix(t, stderr, "ERR: vlsm allocate: ")
	},

	"reject unsupported output formats": func(t *testing.T) {
		_, stderr, exitCode := run(t, "allocate", "-b", "10.0.0.0/24", "-o", "xml", "office=10")
		assert.Equal(t, exitCode, 2)
		assert.HasPrefix(t, stderr, "invalid value \"xml\" for flag -o: unsupported output format")
	},

	"passing an unsupported flag to the command causes an error": func(t *testing.T) {
		_, _, exitCode := run(t, "allocate", "-_")
		assert.Equal(t, exitCode, 2)
	},
}
