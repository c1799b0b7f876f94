// Package vm provides VM lifecycle management on top of Vagrant.
//
// A Session binds one VM's name, directory and effective settings to a
// command runner. Its operations map to Vagrant commands:
//   - Start: download the base box and generate the Vagrantfile if needed,
//     add the box to Vagrant, then "vagrant up"
//   - Stop, Restart, SSH: "vagrant halt", "vagrant reload", "vagrant ssh"
//   - Delete: "vagrant destroy" then "vagrant box remove"
//   - Configure, Reconfigure: (re)generate the Vagrantfile
//   - Download: fetch the base box over HTTP, rsync or a local copy
//
// A Manager resolves CLI targets ("all" or a registered VM), builds sessions
// and persists configuration changes.
//
// Error Handling:
//
// Non-zero exit statuses of external commands are logged and returned in
// execx.Result; they are never retried and do not stop processing of other
// VMs. Errors are returned only for local failures (configuration, template
// rendering, filesystem).
package vm
