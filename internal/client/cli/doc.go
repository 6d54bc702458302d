// Package cli is the interactive vgcli client for the video-generation
// service.
//
// App binds the session store, the video and admin services and the local
// downloader to a line-oriented REPL. Anonymous users can sign in, register,
// request a password reset and browse example videos. Signed-in users
// generate videos, enhance prompts and list their recent work. Admins also
// get the back-office views: dashboard stats, the users table with search,
// role and status filters, sorting and pagination, row actions, and the
// all-videos list.
//
// The REPL is started with App.Run, which restores any persisted session and
// blocks until the user exits. See runREPL for the command surface.
package cli
