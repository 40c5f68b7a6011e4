package db

const tokenCreateQ = `
INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
VALUES ($1, $2, $3)
`

const tokenRotateQ = `
UPDATE refresh_tokens
SET token_hash = $1,
    expires_at = $2,
    last_used_at = now()
WHERE user_id = $3 AND token_hash = $4 AND expires_at > now()
`

const tokenRevokeQ = `
DELETE FROM refresh_tokens
WHERE user_id = $1 AND token_hash = $2
`

const tokenRevokeAllQ = `
DELETE FROM refresh_tokens
WHERE user_id = $1
`
