// Package auth provides authentication and authorization for the catalogue.
//
// Accounts live in the users table. Passwords are stored as bcrypt hashes
// and sessions are kept server-side in SQLite through scs, so the cookie
// only carries an opaque token. A session records the user id, username,
// admin flag and login time.
//
// # Configuration
//
//	SECRET_KEY=<random string>         # CSRF signing key, generated if empty
//	AUTH_SESSION_LIFETIME=24h          # Session duration
//	AUTH_BCRYPT_COST=12                # bcrypt cost factor
//	AUTH_SECURE_COOKIES=true           # HTTPS-only cookies
//	AUTH_MIN_PASSWORD_LENGTH=6         # Enforced on registration
//	AUTH_MAX_LOGIN_ATTEMPTS=5          # Failed logins before lockout
//
// # Usage
//
// Wire the session middleware before any handler that reads the session:
//
//	sm, _ := auth.NewSessionManager(sqlDB, cfg.Auth)
//	router.Use(sm.SessionLoadSave(), auth.SessionContext(sm))
//	auth.NewAuthController(service, sm, templatesPath, cfg.Auth, events).RegisterRoutes(router)
//
// Handlers pass the session on explicitly:
//
//	session := auth.GetSession(c) // nil for anonymous visitors
//	if !session.CanManageBooks() { ... }
package auth
