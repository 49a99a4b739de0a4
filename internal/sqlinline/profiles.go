package sqlinline

const QUpsertProfile = `--sql 6dacb00b-4e1f-438f-9e7d-2ec4d4611d9f
insert into profiles(user_id, wallet_type, payment_alias, created_at, updated_at)
values ($1::uuid, $2::text, $3::text, now(), now())
on conflict (user_id) do update set
    wallet_type = excluded.wallet_type,
    payment_alias = excluded.payment_alias,
    updated_at = now()
returning user_id, wallet_type, payment_alias, created_at, updated_at;
`

const QSelectProfileByUserID = `--sql 188cd224-a389-4958-a545-8f0cb03baa44
select user_id, wallet_type, payment_alias, created_at, updated_at
from profiles
where user_id = $1::uuid
limit 1;
`
