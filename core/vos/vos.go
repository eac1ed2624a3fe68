// Package vos holds the state a shell shares with the processes it starts:
// the environment, aliases, working directory, standard streams, and the
// filesystem used to resolve commands.
package vos

import "os"

type VNetwork interface {
	Hostname() (string, error)
}

// VDir manages the working directory.
type VDir interface {
	Chdir(dir string) error
	Getwd() (string, error)
}

// VOS is the slice of the host OS a shell depends on.
type VOS interface {
	VNetwork
	VDir

	Getuid() int
}

// HostOS implements VOS with the real operating system.
type HostOS struct{}

var _ VOS = HostOS{}

// Hostname implements VNetwork.Hostname.
func (HostOS) Hostname() (string, error) {
	return os.Hostname()
}

// Chdir implements VDir.Chdir.
func (HostOS) Chdir(dir string) error {
	return os.Chdir(dir)
}

// Getwd implements VDir.Getwd.
func (HostOS) Getwd() (string, error) {
	return os.Getwd()
}

// Getuid implements VOS.Getuid.
func (HostOS) Getuid() int {
	return os.Getuid()
}
