package depgraph

import "sort"

// stdlibModules is the closed set of top-level Python standard library
// module names used by origin classification. It mirrors CPython's
// sys.stdlib_module_names for the 3.x line; names absent from this list
// classify as third-party.
var stdlibModules = map[string]struct{}{
	"__future__": {}, "abc": {}, "aifc": {}, "argparse": {}, "array": {},
	"ast": {}, "asyncio": {}, "atexit": {}, "base64": {}, "bdb": {},
	"binascii": {}, "bisect": {}, "builtins": {}, "bz2": {}, "calendar": {},
	"cmath": {}, "cmd": {}, "code": {}, "codecs": {}, "codeop": {},
	"collections": {}, "colorsys": {}, "compileall": {}, "concurrent": {},
	"configparser": {}, "contextlib": {}, "contextvars": {}, "copy": {},
	"copyreg": {}, "cProfile": {}, "csv": {}, "ctypes": {}, "curses": {},
	"dataclasses": {}, "datetime": {}, "dbm": {}, "decimal": {},
	"difflib": {}, "dis": {}, "doctest": {}, "email": {}, "encodings": {},
	"ensurepip": {}, "enum": {}, "errno": {}, "faulthandler": {},
	"fcntl": {}, "filecmp": {}, "fileinput": {}, "fnmatch": {},
	"fractions": {}, "ftplib": {}, "functools": {}, "gc": {}, "getopt": {},
	"getpass": {}, "gettext": {}, "glob": {}, "graphlib": {}, "grp": {},
	"gzip": {}, "hashlib": {}, "heapq": {}, "hmac": {}, "html": {},
	"http": {}, "idlelib": {}, "imaplib": {}, "importlib": {},
	"inspect": {}, "io": {}, "ipaddress": {}, "itertools": {}, "json": {},
	"keyword": {}, "linecache": {}, "locale": {}, "logging": {},
	"lzma": {}, "mailbox": {}, "marshal": {}, "math": {}, "mimetypes": {},
	"mmap": {}, "modulefinder": {}, "multiprocessing": {}, "netrc": {},
	"ntpath": {}, "numbers": {}, "operator": {}, "optparse": {}, "os": {},
	"pathlib": {}, "pdb": {}, "pickle": {}, "pickletools": {},
	"pkgutil": {}, "platform": {}, "plistlib": {}, "poplib": {},
	"posixpath": {}, "pprint": {}, "profile": {}, "pstats": {}, "pty": {},
	"pwd": {}, "py_compile": {}, "pyclbr": {}, "pydoc": {}, "queue": {},
	"quopri": {}, "random": {}, "re": {}, "readline": {}, "reprlib": {},
	"resource": {}, "rlcompleter": {}, "runpy": {}, "sched": {},
	"secrets": {}, "select": {}, "selectors": {}, "shelve": {},
	"shlex": {}, "shutil": {}, "signal": {}, "site": {}, "smtplib": {},
	"socket": {}, "socketserver": {}, "sqlite3": {}, "ssl": {}, "stat": {},
	"statistics": {}, "string": {}, "stringprep": {}, "struct": {},
	"subprocess": {}, "symtable": {}, "sys": {}, "sysconfig": {},
	"syslog": {}, "tabnanny": {}, "tarfile": {}, "tempfile": {},
	"termios": {}, "textwrap": {}, "threading": {}, "time": {},
	"timeit": {}, "tkinter": {}, "token": {}, "tokenize": {},
	"tomllib": {}, "trace": {}, "traceback": {}, "tracemalloc": {},
	"tty": {}, "turtle": {}, "types": {}, "typing": {}, "unicodedata": {},
	"unittest": {}, "urllib": {}, "uuid": {}, "venv": {}, "warnings": {},
	"wave": {}, "weakref": {}, "webbrowser": {}, "wsgiref": {},
	"xml": {}, "xmlrpc": {}, "zipapp": {}, "zipfile": {}, "zipimport": {},
	"zlib": {}, "zoneinfo": {},
}

// IsStdlib reports whether a top-level module name belongs to the Python
// standard library.
func IsStdlib(name string) bool {
	_, ok := stdlibModules[name]
	return ok
}

// StdlibModules returns the closed stdlib name list in sorted order.
func StdlibModules() []string {
	out := make([]string, 0, len(stdlibModules))
	for name := range stdlibModules {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
