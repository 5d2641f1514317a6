package vfs

import "strings"

// HomePath is where ~ points and where a fresh session starts.
const HomePath = "/home/purbayan"

// ResolvePath turns target into a normalized absolute path relative to cwd.
//
// It understands ".", "..", a leading "~", repeated or trailing slashes, and both
// absolute and relative targets. It never fails: ".." above the root stays at
// the root, and an empty target resolves to cwd itself.
// Examples (cwd=/home/purbayan):
//
//	"projects"      -> /home/purbayan/projects
//	"../.."         -> /
//	"~/blog/"       -> /home/purbayan/blog
//	"/etc/../var"   -> /var
func ResolvePath(cwd, target string) string {
	var base string
	switch {
	case target == "~" || strings.HasPrefix(target, "~/"):
		base = HomePath
		target = strings.TrimPrefix(target, "~")
	case strings.HasPrefix(target, "/"):
		base = "/"
	default:
		base = cwd
	}

	stack := make([]string, 0, 8)
	for _, part := range [][]string{strings.Split(base, "/"), strings.Split(target, "/")} {
		for _, seg := range part {
			switch seg {
			case "", ".":
			case "..":
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
			default:
				stack = append(stack, seg)
			}
		}
	}
	return "/" + strings.Join(stack, "/")
}

// Join appends name to an absolute directory path.
func Join(dir, name string) string {
	if dir == "/" {
		return "/" + name
	}
	return dir + "/" + name
}

// Split returns the parent directory and final element of an absolute path.
// The root splits into ("/", "").
func Split(absPath string) (dir, name string) {
	if absPath == "/" {
		return "/", ""
	}
	i := strings.LastIndex(absPath, "/")
	if i <= 0 {
		return "/", absPath[i+1:]
	}
	return absPath[:i], absPath[i+1:]
}

// DisplayPath abbreviates the home directory to ~ for prompts.
func DisplayPath(absPath string) string {
	if absPath == HomePath {
		return "~"
	}
	if strings.HasPrefix(absPath, HomePath+"/") {
		return "~" + strings.TrimPrefix(absPath, HomePath)
	}
	return absPath
}
