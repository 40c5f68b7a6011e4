package db

const userGetByIDQ = `
SELECT 
	u.id, 
	u.name, 
	u.email, 
	u.google_id,
	u.avatar,
	u.created_at, 
	u.updated_at
FROM users u
WHERE u.id = $1
`

const userGetByEmailQ = `
SELECT 
    u.id, 
    u.name, 
    u.email, 
    u.password,
    u.google_id,
    u.avatar,
    u.created_at, 
    u.updated_at
FROM users u
WHERE email = $1
`

const userCreateQ = `
INSERT INTO users (name, password, email, google_id, avatar) 
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`

const userUpdateQ = `
UPDATE users 
SET name = $1, 
    avatar = $2,
    updated_at = now()
WHERE id = $3
`

const userUpdatePasswordQ = `
UPDATE users
SET password = $1,
    updated_at = now()
WHERE id = $2
`

const userLinkGoogleQ = `
UPDATE users
SET google_id = $1,
    name = CASE WHEN name = '' THEN $2 ELSE name END,
    updated_at = now()
WHERE id = $3
`

const userDeleteQ = `
DELETE FROM users 
WHERE id = $1
`
